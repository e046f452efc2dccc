package repositories

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextractClient_AnalyzeDocument_over_http(t *testing.T) {
	defer gock.Off()

	gock.New("https://textract.eu-west-1.amazonaws.com").
		Post("/").
		MatchHeader("X-Amz-Target", "Textract.AnalyzeDocument").
		Reply(http.StatusOK).
		SetHeader("Content-Type", "application/x-amz-json-1.1").
		JSON(map[string]any{
			"DocumentMetadata": map[string]any{"Pages": 1},
			"Blocks": []map[string]any{
				{"Id": "w1", "BlockType": "WORD", "Text": "Date"},
			},
		})

	httpClient := &http.Client{}
	gock.InterceptClient(httpClient)
	client := NewTextractClient(aws.Config{
		Region:      "eu-west-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		HTTPClient:  httpClient,
	})

	repo := NewTextractRepository(client, 0)
	blocks, err := repo.AnalyzeTables(context.Background(), []byte("%PDF-1.4"))

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, types.BlockTypeWord, blocks[0].BlockType)
	assert.Equal(t, "Date", aws.ToString(blocks[0].Text))
	assert.True(t, gock.IsDone())
}

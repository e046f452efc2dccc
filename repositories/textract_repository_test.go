package repositories

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docneat/docneat-backend/models"
)

type textractClientMock struct {
	mock.Mock
}

func (m *textractClientMock) AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput,
	optFns ...func(*textract.Options),
) (*textract.AnalyzeDocumentOutput, error) {
	args := m.Called(params)
	out, _ := args.Get(0).(*textract.AnalyzeDocumentOutput)
	return out, args.Error(1)
}

func TestTextractRepository_AnalyzeTables(t *testing.T) {
	ctx := context.Background()
	document := []byte("%PDF-1.4")
	blocks := []types.Block{{Id: aws.String("t1"), BlockType: types.BlockTypeTable}}

	isTablesRequest := mock.MatchedBy(func(in *textract.AnalyzeDocumentInput) bool {
		return string(in.Document.Bytes) == string(document) &&
			len(in.FeatureTypes) == 1 && in.FeatureTypes[0] == types.FeatureTypeTables
	})

	t.Run("nominal", func(t *testing.T) {
		client := new(textractClientMock)
		client.On("AnalyzeDocument", isTablesRequest).
			Return(&textract.AnalyzeDocumentOutput{Blocks: blocks}, nil).Once()

		got, err := NewTextractRepository(client, 0).AnalyzeTables(ctx, document)

		require.NoError(t, err)
		assert.Equal(t, blocks, got)
		client.AssertExpectations(t)
	})

	t.Run("retries throttling", func(t *testing.T) {
		client := new(textractClientMock)
		client.On("AnalyzeDocument", isTablesRequest).
			Return(nil, &types.ThrottlingException{Message: aws.String("slow down")}).Once()
		client.On("AnalyzeDocument", isTablesRequest).
			Return(&textract.AnalyzeDocumentOutput{Blocks: blocks}, nil).Once()

		got, err := NewTextractRepository(client, 100).AnalyzeTables(ctx, document)

		require.NoError(t, err)
		assert.Equal(t, blocks, got)
		client.AssertExpectations(t)
	})

	t.Run("does not retry unsupported documents", func(t *testing.T) {
		client := new(textractClientMock)
		client.On("AnalyzeDocument", isTablesRequest).
			Return(nil, &types.UnsupportedDocumentException{Message: aws.String("multi page")}).Once()

		_, err := NewTextractRepository(client, 0).AnalyzeTables(ctx, document)

		var unsupported *types.UnsupportedDocumentException
		assert.True(t, errors.As(err, &unsupported))
		client.AssertExpectations(t)
	})

	t.Run("rejects documents above the synchronous limit", func(t *testing.T) {
		client := new(textractClientMock)

		_, err := NewTextractRepository(client, 0).
			AnalyzeTables(ctx, make([]byte, textractMaxDocumentSize+1))

		assert.True(t, errors.Is(err, models.ErrTextractDocumentTooLarge))
		client.AssertNotCalled(t, "AnalyzeDocument", mock.Anything)
	})

	t.Run("disabled", func(t *testing.T) {
		repo := NewTextractRepository(nil, 0)

		_, err := repo.AnalyzeTables(ctx, document)

		assert.False(t, repo.Enabled())
		assert.True(t, errors.Is(err, models.ErrTextractDisabled))
	})
}

package extraction

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docneat/docneat-backend/models"
)

func word(id, text string) types.Block {
	return types.Block{Id: aws.String(id), BlockType: types.BlockTypeWord, Text: aws.String(text)}
}

func cell(id string, row, col int32, wordIds ...string) types.Block {
	b := types.Block{
		Id:          aws.String(id),
		BlockType:   types.BlockTypeCell,
		RowIndex:    aws.Int32(row),
		ColumnIndex: aws.Int32(col),
	}
	if len(wordIds) > 0 {
		b.Relationships = []types.Relationship{{Type: types.RelationshipTypeChild, Ids: wordIds}}
	}
	return b
}

func table(id string, cellIds ...string) types.Block {
	return types.Block{
		Id:            aws.String(id),
		BlockType:     types.BlockTypeTable,
		Relationships: []types.Relationship{{Type: types.RelationshipTypeChild, Ids: cellIds}},
	}
}

func TestTablesFromTextractBlocks(t *testing.T) {
	blocks := []types.Block{
		table("t1", "c11", "c12", "c21", "c22", "c31"),
		cell("c11", 1, 1, "w1"),
		cell("c12", 1, 2, "w2", "w3"),
		// cells are deliberately listed out of order
		cell("c22", 2, 2, "w5"),
		cell("c21", 2, 1, "w4"),
		cell("c31", 3, 1, "w6"),
		word("w1", "Date"),
		word("w2", "Paid"),
		word("w3", "out"),
		word("w4", "12 Jan 24"),
		word("w5", "10.00"),
		word("w6", "13 Jan 24"),
		{Id: aws.String("line"), BlockType: types.BlockTypeLine, Text: aws.String("ignored")},
	}

	tables := TablesFromTextractBlocks(blocks)

	require.Len(t, tables, 1)
	assert.Equal(t, models.Table{
		Header: []string{"Date", "Paid out"},
		Rows: [][]string{
			{"12 Jan 24", "10.00"},
			{"13 Jan 24", ""},
		},
	}, tables[0])
}

func TestTablesFromTextractBlocks_skips_tables_without_cells(t *testing.T) {
	blocks := []types.Block{
		table("t1"),
		table("t2", "c11"),
		cell("c11", 1, 1),
	}

	tables := TablesFromTextractBlocks(blocks)

	require.Len(t, tables, 1)
	assert.Equal(t, []string{""}, tables[0].Header)
	assert.Empty(t, tables[0].Rows)
}

func TestMergeTables(t *testing.T) {
	merged := MergeTables([]models.Table{
		{Header: []string{"Date", "Paid in"}, Rows: [][]string{{"1 Jan 24", "5.00"}}},
		{Header: []string{"Date", "Balance", "Balance"}, Rows: [][]string{{"2 Jan 24", "10.00", "x"}}},
	})

	assert.Equal(t, []string{"Date", "Paid in", "Balance", "Balance.1"}, merged.Header)
	assert.Equal(t, [][]string{
		{"1 Jan 24", "5.00", "", ""},
		{"2 Jan 24", "", "10.00", "x"},
	}, merged.Rows)
}

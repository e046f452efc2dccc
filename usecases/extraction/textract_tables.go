package extraction

import (
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/docneat/docneat-backend/models"
)

type textractCell struct {
	row  int32
	col  int32
	text string
}

// TablesFromTextractBlocks rebuilds the tables of an AnalyzeDocument response. The first row of
// each table is used as its header.
func TablesFromTextractBlocks(blocks []types.Block) []models.Table {
	byId := make(map[string]types.Block, len(blocks))
	for _, block := range blocks {
		if block.Id != nil {
			byId[*block.Id] = block
		}
	}

	var tables []models.Table
	for _, block := range blocks {
		if block.BlockType != types.BlockTypeTable {
			continue
		}

		var cells []textractCell
		for _, cellId := range childIds(block) {
			cell, ok := byId[cellId]
			if !ok || cell.BlockType != types.BlockTypeCell {
				continue
			}
			cells = append(cells, textractCell{
				row:  aws.ToInt32(cell.RowIndex),
				col:  aws.ToInt32(cell.ColumnIndex),
				text: cellText(cell, byId),
			})
		}

		if table, ok := tableFromCells(cells); ok {
			tables = append(tables, table)
		}
	}
	return tables
}

func childIds(block types.Block) []string {
	var ids []string
	for _, rel := range block.Relationships {
		if rel.Type == types.RelationshipTypeChild {
			ids = append(ids, rel.Ids...)
		}
	}
	return ids
}

func cellText(cell types.Block, byId map[string]types.Block) string {
	words := make([]string, 0)
	for _, wordId := range childIds(cell) {
		word, ok := byId[wordId]
		if !ok || word.BlockType != types.BlockTypeWord {
			continue
		}
		words = append(words, aws.ToString(word.Text))
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

func tableFromCells(cells []textractCell) (models.Table, bool) {
	if len(cells) == 0 {
		return models.Table{}, false
	}

	rowIndexes := make([]int32, 0)
	width := int32(0)
	byRow := make(map[int32]map[int32]string)
	for _, cell := range cells {
		if _, ok := byRow[cell.row]; !ok {
			byRow[cell.row] = make(map[int32]string)
			rowIndexes = append(rowIndexes, cell.row)
		}
		byRow[cell.row][cell.col] = cell.text
		width = max(width, cell.col)
	}
	slices.Sort(rowIndexes)

	grid := make([][]string, 0, len(rowIndexes))
	for _, rowIndex := range rowIndexes {
		row := make([]string, width)
		for col, text := range byRow[rowIndex] {
			if col >= 1 {
				row[col-1] = text
			}
		}
		grid = append(grid, row)
	}

	return models.Table{Header: grid[0], Rows: grid[1:]}, true
}

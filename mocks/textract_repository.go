package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/mock"
)

type TextractRepository struct {
	mock.Mock
}

func (m *TextractRepository) AnalyzeTables(ctx context.Context, document []byte) ([]types.Block, error) {
	args := m.Called(ctx, document)
	return args.Get(0).([]types.Block), args.Error(1)
}

func (m *TextractRepository) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

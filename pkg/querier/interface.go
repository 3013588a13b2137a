package querier

import (
	"context"

	"github.com/Sir-Bobert-II/BOR-define/pkg/parser"
)

//go:generate go run github.com/vektra/mockery/cmd/mockery -name Querier -output ../mocks/

type Querier interface {
	GetEntries(ctx context.Context, word string) ([]*parser.WordEntry, error)
	Close(ctx context.Context) error
}

package querier

import (
	"io"

	"github.com/Sir-Bobert-II/BOR-define/pkg/parser"
)

type Parser interface {
	ParseEntries(body io.Reader) ([]*parser.WordEntry, error)
}

// JSONParser parses entries endpoint body
type JSONParser struct{}

func (p *JSONParser) ParseEntries(body io.Reader) ([]*parser.WordEntry, error) {
	return parser.ParseEntriesJSON(body)
}

package define

import (
	"strings"

	"github.com/Sir-Bobert-II/BOR-define/pkg/parser"
	"github.com/Sir-Bobert-II/BOR-define/pkg/querier"
)

// Sense is the first definition of one meaning.
type Sense struct {
	PartOfSpeech string  `json:"part_of_speech"`
	Definition   string  `json:"definition"`
	Example      *string `json:"example,omitempty"`
}

// Summary is a short description of a word built from the first entry.
type Summary struct {
	Word   string  `json:"word"`
	Senses []Sense `json:"senses"`
}

// Summarize picks the first definition of every meaning of the first entry.
// Meanings without definitions are skipped. It returns querier.ErrNotFound
// if there is no entry to summarize.
func Summarize(word string, entries []*parser.WordEntry) (*Summary, error) {
	if len(entries) == 0 || entries[0] == nil {
		return nil, querier.ErrNotFound
	}
	summary := &Summary{Word: word}
	for _, meaning := range entries[0].Meanings {
		if len(meaning.Definitions) == 0 {
			continue
		}
		first := meaning.Definitions[0]
		summary.Senses = append(summary.Senses, Sense{
			PartOfSpeech: meaning.PartOfSpeech,
			Definition:   first.Definition,
			Example:      first.Example,
		})
	}
	return summary, nil
}

func (s *Summary) String() string {
	var b strings.Builder
	b.WriteString("Definitions for " + s.Word + ":\n")
	for _, sense := range s.Senses {
		b.WriteString("(" + sense.PartOfSpeech + ") " + sense.Definition + "\n")
		if sense.Example != nil {
			b.WriteString("    Example: '" + *sense.Example + "'\n")
		}
	}
	return b.String()
}

package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrTrailingData = errors.New("trailing data after entries")

// ParseEntriesJSON decodes response body of entries endpoint.
// Body must be a single JSON array of entries, anything else is an error.
func ParseEntriesJSON(page io.Reader) ([]*WordEntry, error) {
	dec := json.NewDecoder(page)
	var entries []*WordEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("can not decode entries: %w", err)
	}
	var rest json.RawMessage
	if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return entries, nil
}

package parser

import "encoding/json"

// WordEntry is one dictionary record returned by the API for a queried word.
type WordEntry struct {
	Word       string     `json:"word"`
	Phonetics  []Phonetic `json:"phonetics"`
	Meanings   []Meaning  `json:"meanings"`
	Synonyms   []string   `json:"synonyms"`
	Antonyms   []string   `json:"antonyms"`
	License    License    `json:"license"`
	SourceURLs []string   `json:"sourceUrls"`
}

type Phonetic struct {
	Audio     string   `json:"audio"`
	SourceURL *string  `json:"sourceUrl,omitempty"`
	License   *License `json:"license,omitempty"`
	Text      *string  `json:"text,omitempty"`
}

// Meaning groups definitions under one part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Definition is a single sense. Synonyms and antonyms are kept opaque,
// the API is not consistent about their shape.
type Definition struct {
	Definition string            `json:"definition"`
	Synonyms   []json.RawMessage `json:"synonyms"`
	Antonyms   []json.RawMessage `json:"antonyms"`
	Example    *string           `json:"example,omitempty"`
}

type License struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

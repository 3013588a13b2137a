// Package define looks English words up in the Free Dictionary API and
// renders short summaries suitable for chat replies.
package define

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Sir-Bobert-II/BOR-define/pkg/querier"
)

type Service struct {
	q      querier.Querier
	logger *zap.Logger
}

func New(q querier.Querier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		q:      q,
		logger: logger,
	}
}

// Default returns Service that queries api.dictionaryapi.dev
func Default(logger *zap.Logger) *Service {
	return New(querier.NewRemote(nil, nil, logger, nil), logger)
}

// Define returns summary for word. Error is either *querier.RequestError or
// wraps querier.ErrNotFound.
func (s *Service) Define(ctx context.Context, word string) (*Summary, error) {
	normalized := querier.Normalize(word)
	entries, err := s.q.GetEntries(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return Summarize(normalized, entries)
}

// Lookup is Define rendered for display. It never fails.
func (s *Service) Lookup(ctx context.Context, word string) string {
	summary, err := s.Define(ctx, word)
	if err != nil {
		s.logger.Debug("Lookup failed", zap.String("word", word), zap.Error(err))
		return Message(word, err)
	}
	return summary.String()
}

// Message renders error returned by Define. Word must be the input as given
// by user.
func Message(word string, err error) string {
	var requestErr *querier.RequestError
	if errors.As(err, &requestErr) {
		return "RequestError: Internal request error: " + requestErr.Err.Error()
	}
	return "Couldn't define '" + word + "'"
}

func (s *Service) Close(ctx context.Context) error {
	return s.q.Close(ctx)
}

package querier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"

	"github.com/Sir-Bobert-II/BOR-define/pkg/parser"
)

const (
	defaultHost     = "api.dictionaryapi.dev"
	defaultProtocol = "https"
	entriesPath     = "/api/v2/entries/en/"
)

type Config struct {
	// ExtraHeader specifies what header will be added to each request
	ExtraHeader map[string]string
	// Timeout is used only by the default client, zero means no timeout
	Timeout time.Duration
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
	// MaxWorkers specifies how many workers parse response bodies
	// Zero value mean that it will be equal to number of logical CPU
	MaxWorkers int
}

type Remote struct {
	client *http.Client
	config *Config
	pool   *workerpool.WorkerPool
	p      Parser
	logger *zap.Logger

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

func NewRemote(client *http.Client, p Parser, logger *zap.Logger, config *Config) *Remote {
	if config == nil {
		config = &Config{}
	}
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	if p == nil {
		p = &JSONParser{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Host == "" {
		config.Host = defaultHost
	}
	if config.Protocol == "" {
		config.Protocol = defaultProtocol
	}
	if config.MaxWorkers < 1 { // nolint:gomnd // if number not specified
		config.MaxWorkers = runtime.NumCPU()
	}
	return &Remote{
		client: client,
		config: config,
		pool:   workerpool.New(config.MaxWorkers),
		p:      p,
		logger: logger,
	}
}

// Normalize lowercases and trims word and encodes spaces as %20.
// Other reserved characters are left as is.
func Normalize(word string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(word)), " ", "%20")
}

// EntryURL returns url of entries endpoint for word.
func (q *Remote) EntryURL(word string) string {
	return q.config.Protocol + "://" + q.config.Host + entriesPath + escapePath(Normalize(word))
}

// GetEntries performs single request for word. It returns *RequestError if
// request was not completed and ErrNotFound if response has no entries.
func (q *Remote) GetEntries(ctx context.Context, word string) ([]*parser.WordEntry, error) {
	response, err := q.get(ctx, word)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	entries, err := q.parse(response.Body)
	if errors.Is(err, ErrClosed) {
		return nil, NewRequestError(q.EntryURL(word), err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries, nil
}

// parse holds read lock while body is in the pool, so Close waits for it.
func (q *Remote) parse(body io.Reader) (entries []*parser.WordEntry, err error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return nil, ErrClosed
	}
	// Use pool here, so amount of concurrently decoded bodies is bounded
	q.pool.SubmitWait(func() {
		entries, err = q.p.ParseEntries(body)
	})
	return entries, err
}

func (q *Remote) isClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Download returns raw response body for word whatever the status is.
func (q *Remote) Download(ctx context.Context, word string) ([]byte, error) {
	response, err := q.get(ctx, word)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, NewRequestError(q.EntryURL(word), err)
	}
	return body, nil
}

func (q *Remote) get(ctx context.Context, word string) (*http.Response, error) {
	entryURL := q.EntryURL(word)
	if q.isClosed() {
		return nil, NewRequestError(entryURL, ErrClosed)
	}
	request, err := q.newRequest(ctx, word)
	if err != nil {
		return nil, NewRequestError(entryURL, err)
	}
	response, err := q.client.Do(request)
	if err != nil {
		return nil, NewRequestError(entryURL, err)
	}
	q.logger.Info("Requested",
		zap.String("url", entryURL),
		zap.Int("status", response.StatusCode),
	)
	return response, nil
}

// newRequest puts normalized word on the wire through escapePath. url.Parse
// would reject a lone '%', which the API answers like any unknown word.
func (q *Remote) newRequest(ctx context.Context, word string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.config.Protocol+"://"+q.config.Host+"/", nil)
	if err != nil {
		return nil, err
	}
	req.URL.Opaque = "//" + q.config.Host + entriesPath + escapePath(Normalize(word))
	for key, value := range q.config.ExtraHeader {
		req.Header.Add(key, value)
	}
	return req, nil
}

// escapePath percent-encodes non-ASCII and control bytes of path and drops
// tabs and newlines. '%' and the rest of printable ASCII are left as is.
func escapePath(path string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '\t' || c == '\n' || c == '\r':
		case c < 0x20 || c >= 0x7f:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Close stops the pool. Requests made after Close fail with *RequestError.
func (q *Remote) Close(ctx context.Context) error {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		q.client.CloseIdleConnections()
		q.pool.StopWait()
	})
	return nil
}

// IsNotFound reports whether err means that word has no definitions.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

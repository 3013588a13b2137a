package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	define "github.com/Sir-Bobert-II/BOR-define"
	"github.com/Sir-Bobert-II/BOR-define/pkg/mocks"
	"github.com/Sir-Bobert-II/BOR-define/pkg/parser"
	"github.com/Sir-Bobert-II/BOR-define/pkg/querier"
)

var testEntries = []*parser.WordEntry{
	{
		Word: "test",
		Meanings: []parser.Meaning{
			{
				PartOfSpeech: "noun",
				Definitions:  []parser.Definition{{Definition: "a trial"}},
			},
		},
	},
}

func newTestServer(t *testing.T, q *mocks.Querier) (*Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	return newServer(logger, &Config{Host: "localhost:0"}, define.New(q, logger)), logs
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleDefine(t *testing.T) {
	testCases := map[string]struct {
		target   string
		word     string
		entries  []*parser.WordEntry
		err      error
		code     int
		expected ResponseDefine
	}{
		"found": {
			target:  "/define?word=Test",
			word:    "test",
			entries: testEntries,
			code:    http.StatusOK,
			expected: ResponseDefine{
				Word:   "Test",
				Text:   "Definitions for test:\n(noun) a trial\n",
				Status: ResponseOK,
				Summary: &define.Summary{
					Word:   "test",
					Senses: []define.Sense{{PartOfSpeech: "noun", Definition: "a trial"}},
				},
			},
		},
		"not found": {
			target: "/define?word=Qwzx",
			word:   "qwzx",
			err:    querier.ErrNotFound,
			code:   http.StatusOK,
			expected: ResponseDefine{
				Word:   "Qwzx",
				Text:   "Couldn't define 'Qwzx'",
				Status: ResponseNotFound,
			},
		},
		"request error": {
			target: "/define?word=hello%20world",
			word:   "hello%20world",
			err:    &querier.RequestError{URL: "u", Err: errors.New("timeout")},
			code:   http.StatusOK,
			expected: ResponseDefine{
				Word:   "hello world",
				Text:   "RequestError: Internal request error: timeout",
				Status: ResponseRequestError,
			},
		},
		"missing word": {
			target:   "/define",
			code:     http.StatusBadRequest,
			expected: ResponseDefine{Status: ResponseBadRequest},
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			q := &mocks.Querier{}
			if tc.word != "" {
				q.On("GetEntries", mock.Anything, tc.word).Return(tc.entries, tc.err)
			}
			s, _ := newTestServer(t, q)

			rec := serve(s, http.MethodGet, tc.target, "")
			q.AssertExpectations(t)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var response ResponseDefine
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, tc.expected, response)
		})
	}
}

func TestHandleCommands(t *testing.T) {
	s, _ := newTestServer(t, &mocks.Querier{})

	rec := serve(s, http.MethodGet, "/commands", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var commands []*discordgo.ApplicationCommand
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&commands))
	require.Len(t, commands, 1)
	assert.Equal(t, "define", commands[0].Name)
	assert.Equal(t, "Define an English word", commands[0].Description)
	require.NotNil(t, commands[0].DMPermission)
	assert.True(t, *commands[0].DMPermission)
	require.Len(t, commands[0].Options, 1)
	assert.Equal(t, "word", commands[0].Options[0].Name)
	assert.Equal(t, discordgo.ApplicationCommandOptionString, commands[0].Options[0].Type)
	assert.True(t, commands[0].Options[0].Required)
}

func TestHandleInvoke(t *testing.T) {
	testCases := map[string]struct {
		body     string
		code     int
		expected commandReply
	}{
		"word given": {
			body:     `{"name":"define","options":[{"name":"word","type":3,"value":"test"}]}`,
			code:     http.StatusOK,
			expected: commandReply{Content: "Definitions for test:\n(noun) a trial\n"},
		},
		"word missing": {
			body:     `{"name":"define","options":[]}`,
			code:     http.StatusBadRequest,
			expected: commandReply{Error: "missing required option: word"},
		},
		"invalid body": {
			body:     `{`,
			code:     http.StatusBadRequest,
			expected: commandReply{Error: "invalid request body"},
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			q := &mocks.Querier{}
			q.On("GetEntries", mock.Anything, "test").Return(testEntries, nil).Maybe()
			s, _ := newTestServer(t, q)

			rec := serve(s, http.MethodPost, "/commands/define", tc.body)
			assert.Equal(t, tc.code, rec.Code)

			var reply commandReply
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
			assert.Equal(t, tc.expected, reply)
		})
	}
}

func TestMiddleLogging(t *testing.T) {
	s, logs := newTestServer(t, &mocks.Querier{})

	req := httptest.NewRequest(http.MethodGet, "/commands", nil)
	req.Header.Set(requestIDHeader, "fixed-id")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(requestIDHeader))

	rec = serve(s, http.MethodGet, "/commands", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "fixed-id", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "/commands", entries[0].ContextMap()["path"])
}

func TestServerClose(t *testing.T) {
	q := &mocks.Querier{}
	q.On("Close", mock.Anything).Return(nil)
	s, _ := newTestServer(t, q)

	assert.NoError(t, s.Close(context.TODO()))
	q.AssertExpectations(t)
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func TestServerStop(t *testing.T) {
	var order []string
	q := &mocks.Querier{}
	q.On("Close", mock.Anything).Return(nil).Run(func(mock.Arguments) {
		order = append(order, "service")
	})
	s, _ := newTestServer(t, q)

	bot := closerFunc(func() error {
		order = append(order, "bot")
		return nil
	})
	require.NoError(t, s.Stop(context.TODO(), bot))
	assert.Equal(t, []string{"bot", "service"}, order)
	q.AssertExpectations(t)
}

func TestServerStopWithoutBot(t *testing.T) {
	q := &mocks.Querier{}
	q.On("Close", mock.Anything).Return(nil)
	s, _ := newTestServer(t, q)

	assert.NoError(t, s.Stop(context.TODO(), nil))
	q.AssertExpectations(t)
}

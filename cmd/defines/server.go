package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	define "github.com/Sir-Bobert-II/BOR-define"
	"github.com/Sir-Bobert-II/BOR-define/pkg/command"
	"github.com/Sir-Bobert-II/BOR-define/pkg/querier"
)

const requestIDHeader = "X-Request-Id"

type Server struct {
	http.Server
	logger  *zap.Logger
	service *define.Service
	handler *command.Handler
}

func New(logger *zap.Logger, conf *Config) *Server {
	remote := querier.NewRemote(nil, nil, logger.Named("querier"), &conf.Remote)
	return newServer(logger, conf, define.New(remote, logger))
}

func newServer(logger *zap.Logger, conf *Config, service *define.Service) *Server {
	s := &Server{
		logger:  logger,
		service: service,
		handler: command.NewHandler(service, logger.Named("command")),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withRequestLog)
	r.Get("/define", s.handleDefine())
	r.Get("/commands", s.handleCommands())
	r.Post("/commands/define", s.handleInvoke())

	s.Addr = conf.Host
	s.Handler = r
	return s
}

// Close closes the lookup service only after every handler has returned.
// If shutdown is cut by ctx, service is left open for handlers still running.
func (s *Server) Close(ctx context.Context) error {
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := s.service.Close(ctx); err != nil {
		return fmt.Errorf("close service: %w", err)
	}
	return nil
}

// Stop closes bot, if any, before the server. Interactions bot has
// already accepted are answered before lookup service is closed.
func (s *Server) Stop(ctx context.Context, bot io.Closer) error {
	if bot != nil {
		if err := bot.Close(); err != nil {
			s.logger.Error("Discord close error", zap.Error(err))
		}
		s.handler.Wait()
	}
	return s.Close(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Response encoding failed", zap.Error(err))
		status = http.StatusInternalServerError
		body = []byte(`{"error":"encoding error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("client", r.RemoteAddr),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

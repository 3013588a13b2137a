package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	define "github.com/Sir-Bobert-II/BOR-define"
	"github.com/Sir-Bobert-II/BOR-define/pkg/command"
	"github.com/Sir-Bobert-II/BOR-define/pkg/querier"
)

type ResponseStatus string

const (
	ResponseOK           ResponseStatus = "ok"
	ResponseNotFound     ResponseStatus = "not_found"
	ResponseRequestError ResponseStatus = "request_error"
	ResponseBadRequest   ResponseStatus = "bad_request"
)

type ResponseDefine struct {
	Word    string          `json:"word,omitempty"`
	Text    string          `json:"text,omitempty"`
	Summary *define.Summary `json:"summary,omitempty"`
	Status  ResponseStatus  `json:"status"`
}

func (s *Server) handleDefine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := r.URL.Query().Get(command.WordOption)
		if word == "" {
			s.writeJSON(w, http.StatusBadRequest, &ResponseDefine{Status: ResponseBadRequest})
			return
		}
		response := ResponseDefine{Word: word, Status: ResponseOK}
		summary, err := s.service.Define(r.Context(), word)
		if err != nil {
			response.Status = ResponseNotFound
			var requestErr *querier.RequestError
			if errors.As(err, &requestErr) {
				response.Status = ResponseRequestError
				s.logger.Error("Define request failed",
					zap.Error(err),
					zap.String("word", word),
					zap.String("url", requestErr.URL),
				)
			}
			response.Text = define.Message(word, err)
			s.writeJSON(w, http.StatusOK, &response)
			return
		}
		response.Summary = summary
		response.Text = summary.String()
		s.writeJSON(w, http.StatusOK, &response)
	}
}

func (s *Server) handleCommands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, []*discordgo.ApplicationCommand{s.handler.Command()})
	}
}

type commandReply struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleInvoke runs the command for interaction data posted as JSON, the
// same payload Discord sends in an application command interaction.
func (s *Server) handleInvoke() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data discordgo.ApplicationCommandInteractionData
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			s.writeJSON(w, http.StatusBadRequest, &commandReply{Error: "invalid request body"})
			return
		}
		content, err := s.handler.Handle(r.Context(), data.Options)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, &commandReply{Error: err.Error()})
			return
		}
		s.writeJSON(w, http.StatusOK, &commandReply{Content: content})
	}
}

package chat

import (
	"context"
	"fmt"
	"net/http"

	"github.com/glucomate-org/glucomate/api"
	"github.com/glucomate-org/glucomate/config"
	"github.com/glucomate-org/glucomate/errors"
	"go.uber.org/zap"
)

const basePath = "/api/v1/chat"

//go:generate mockgen --build_flags=--mod=mod -source=./chat.go -destination=./test/mock_service.go -package test MockService

// Service binds the GlucoMate assistant endpoints. Sessions are created
// server side: the first Send without a session id starts one, and the
// returned id threads the rest of the conversation.
type Service interface {
	Status(ctx context.Context) (*Status, error)
	Send(ctx context.Context, message, sessionID string) (*Reply, error)
	Sessions(ctx context.Context) ([]SessionSummary, error)
	Messages(ctx context.Context, sessionID string) ([]Message, error)
	End(ctx context.Context, sessionID string) error
}

type Status struct {
	Online  bool   `json:"online"`
	Model   string `json:"model"`
	Message string `json:"message"`
}

type Reply struct {
	SessionID string `json:"session_id"`
	Text      string
}

type botResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type sendData struct {
	SessionID   string      `json:"session_id"`
	BotResponse botResponse `json:"bot_response"`
}

type SessionSummary struct {
	SessionID string `json:"session_id"`
	StartedAt string `json:"started_at"`
	Ended     bool   `json:"ended"`
}

type Message struct {
	ID     string `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type service struct {
	client   *api.Client
	language string
	logger   *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(client *api.Client, cfg *config.Config, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		client:   client,
		language: cfg.ChatLanguage,
		logger:   logger,
	}, nil
}

func (s *service) Status(ctx context.Context) (*Status, error) {
	envelope, err := s.client.Do(ctx, api.Request{
		Method:        http.MethodGet,
		Path:          basePath + "/status",
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	status := Status{}
	if err := envelope.DecodeData(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *service) Send(ctx context.Context, message, sessionID string) (*Reply, error) {
	if message == "" {
		return nil, fmt.Errorf("message is empty: %w", errors.BadRequest.Err)
	}

	body := map[string]string{
		"message":  message,
		"language": s.language,
	}
	if sessionID != "" {
		body["session_id"] = sessionID
	}

	envelope, err := s.client.Do(ctx, api.Request{
		Method:        http.MethodPost,
		Path:          basePath + "/message",
		Body:          body,
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	data := sendData{}
	if err := envelope.DecodeData(&data); err != nil {
		return nil, err
	}
	return &Reply{
		SessionID: data.SessionID,
		Text:      data.BotResponse.Text,
	}, nil
}

func (s *service) Sessions(ctx context.Context) ([]SessionSummary, error) {
	envelope, err := s.client.Do(ctx, api.Request{
		Method:        http.MethodGet,
		Path:          basePath + "/history",
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	data := struct {
		Sessions []SessionSummary `json:"sessions"`
	}{}
	if err := envelope.DecodeData(&data); err != nil {
		return nil, err
	}
	return data.Sessions, nil
}

func (s *service) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	envelope, err := s.client.Do(ctx, api.Request{
		Method:        http.MethodGet,
		Path:          basePath + "/history/" + sessionID,
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	data := struct {
		Messages []Message `json:"messages"`
	}{}
	if err := envelope.DecodeData(&data); err != nil {
		return nil, err
	}
	return data.Messages, nil
}

func (s *service) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is empty: %w", errors.BadRequest.Err)
	}

	_, err := s.client.Do(ctx, api.Request{
		Method:        http.MethodPut,
		Path:          basePath + "/session/" + sessionID + "/end",
		Body:          map[string]string{},
		Authenticated: true,
	})
	return err
}

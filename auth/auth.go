package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"

	"github.com/glucomate-org/glucomate/api"
	"github.com/glucomate-org/glucomate/errors"
	"github.com/glucomate-org/glucomate/session"
	"go.uber.org/zap"
)

const basePath = "/api/v1/auth"

// Service binds the auth endpoints. All of them exchange the standard
// {success, message, data} envelope; only login produces a token, which is
// written straight into the session store.
type Service interface {
	Register(ctx context.Context, registration Registration) (string, error)
	Login(ctx context.Context, email, password string) (*session.Identity, error)
	Logout() error
	VerifyEmail(ctx context.Context, token string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate mirrors the signup form rules: all fields present, a parseable
// email, and a minimum password length.
func (r Registration) Validate() error {
	if r.FirstName == "" {
		return fmt.Errorf("first name is required: %w", errors.BadRequest.Err)
	}
	if r.LastName == "" {
		return fmt.Errorf("last name is required: %w", errors.BadRequest.Err)
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", errors.BadRequest.Err)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required: %w", errors.BadRequest.Err)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("enter a valid email: %w", errors.BadRequest.Err)
	}
	return nil
}

type service struct {
	client   *api.Client
	sessions session.Store
	deriver  session.Deriver
	logger   *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(client *api.Client, sessions session.Store, deriver session.Deriver, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		client:   client,
		sessions: sessions,
		deriver:  deriver,
		logger:   logger,
	}, nil
}

func (s *service) Register(ctx context.Context, registration Registration) (string, error) {
	if err := registration.Validate(); err != nil {
		return "", err
	}

	envelope, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   basePath + "/register",
		Body:   registration,
	})
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

// loginData tolerates the token key spellings the backend has used.
type loginData struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"accessToken"`
	Bare        string `json:"token"`
}

func (d *loginData) token() string {
	for _, candidate := range []string{d.AccessToken, d.Token, d.Bare} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func (s *service) Login(ctx context.Context, email, password string) (*session.Identity, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("password is required: %w", errors.BadRequest.Err)
	}

	envelope, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   basePath + "/login",
		Body: map[string]string{
			"email":    email,
			"password": password,
		},
	})
	if err != nil {
		return nil, err
	}

	data := loginData{}
	if err := envelope.DecodeData(&data); err != nil {
		return nil, err
	}
	token := data.token()
	if token == "" {
		return nil, fmt.Errorf("login response carried no token: %w", errors.InternalServerError.Err)
	}

	identity, err := s.deriver.DeriveIdentity(token)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SetToken(token); err != nil {
		return nil, err
	}

	s.logger.Infow("logged in", "userId", identity.UserID)
	return identity, nil
}

func (s *service) Logout() error {
	return s.sessions.Clear()
}

func (s *service) VerifyEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("verification token is required: %w", errors.BadRequest.Err)
	}

	query := url.Values{}
	query.Set("token", token)
	envelope, err := s.client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   basePath + "/verify",
		Query:  query,
	})
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

func (s *service) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}

	envelope, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   basePath + "/forgot-password",
		Body:   map[string]string{"email": email},
	})
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("reset token is required: %w", errors.BadRequest.Err)
	}
	if len(newPassword) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters: %w", errors.BadRequest.Err)
	}

	envelope, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   basePath + "/reset-password",
		Body: map[string]string{
			"token":    token,
			"password": newPassword,
		},
	})
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

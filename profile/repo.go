package profile

import (
	"context"
	"net/http"
	"time"

	"github.com/glucomate-org/glucomate/api"
)

const basePath = "/api/v1/medical-profile"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test MockRepository

// Repository is the remote profile store. Update is an idempotent
// whole-record replace scoped to one user; Create inserts the first record
// for the authenticated user.
type Repository interface {
	Overview(ctx context.Context) (*Aggregate, error)
	UpdateSection(ctx context.Context, kind Kind, userID string, payload interface{}) error
	CreateSection(ctx context.Context, kind Kind, payload interface{}) error
}

type repository struct {
	client *api.Client
}

var _ Repository = &repository{}

func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) Overview(ctx context.Context) (*Aggregate, error) {
	envelope, err := r.client.Do(ctx, api.Request{
		Method:        http.MethodGet,
		Path:          basePath + "/overview",
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	document := map[string]interface{}{}
	if err := envelope.DecodeData(&document); err != nil {
		return nil, err
	}
	return NormalizeOverview(document, time.Now()), nil
}

func (r *repository) UpdateSection(ctx context.Context, kind Kind, userID string, payload interface{}) error {
	_, err := r.client.Do(ctx, api.Request{
		Method:        http.MethodPut,
		Path:          basePath + "/" + string(kind) + "/" + userID,
		Body:          payload,
		Authenticated: true,
	})
	return err
}

func (r *repository) CreateSection(ctx context.Context, kind Kind, payload interface{}) error {
	_, err := r.client.Do(ctx, api.Request{
		Method:        http.MethodPost,
		Path:          basePath + "/" + string(kind),
		Body:          payload,
		Authenticated: true,
	})
	return err
}

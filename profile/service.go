package profile

import (
	"context"

	"github.com/glucomate-org/glucomate/errors"
	"go.uber.org/zap"
)

//go:generate mockgen --build_flags=--mod=mod -source=./service.go -destination=./test/mock_service.go -package test MockService

// Outcome tags which path an upsert took, so callers never have to sniff
// status codes to know whether a record existed.
type Outcome string

const (
	OutcomeUpdated Outcome = "updated"
	OutcomeCreated Outcome = "created"
)

type Service interface {
	// UpsertSection persists one section draft: update first, and only on
	// not-found transform to the stricter create shape and create. At most
	// one round trip when the record exists, at most two on first save.
	UpsertSection(ctx context.Context, kind Kind, draft *Draft, userID string) (Outcome, error)
}

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *service) UpsertSection(ctx context.Context, kind Kind, draft *Draft, userID string) (Outcome, error) {
	update, err := BuildUpdatePayload(kind, draft)
	if err != nil {
		return "", err
	}

	err = s.repo.UpdateSection(ctx, kind, userID, update)
	if err == nil {
		s.logger.Debugw("section updated", "section", kind, "userId", userID)
		return OutcomeUpdated, nil
	}
	if !errors.IsNotFound(err) {
		// Terminal for this section, never retried here.
		return "", err
	}

	// No record yet for this user. The create contract demands a larger
	// field set, so validation runs before any request is issued.
	create, err := BuildCreatePayload(kind, draft)
	if err != nil {
		return "", err
	}

	if err := s.repo.CreateSection(ctx, kind, create); err != nil {
		return "", err
	}
	s.logger.Debugw("section created", "section", kind, "userId", userID)
	return OutcomeCreated, nil
}

package profile

import (
	"context"
	"errors"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	glucoerrors "github.com/glucomate-org/glucomate/errors"
	"github.com/glucomate-org/glucomate/session"
	"github.com/google/uuid"
	"github.com/mohae/deepcopy"
	"go.uber.org/zap"
)

type SaveState string

const (
	StateIdle            SaveState = "idle"
	StateSaving          SaveState = "saving"
	StateConfirmed       SaveState = "confirmed"
	StatePartiallyFailed SaveState = "partially_failed"
	StateSessionExpired  SaveState = "session_expired"
)

var (
	ErrSaveInProgress = errors.New("a save is already in progress")
	ErrSuperseded     = errors.New("save superseded by a newer edit")
	ErrNoDraft        = errors.New("no draft loaded")
)

type SectionFailure struct {
	Kind Kind
	Err  error
}

// AggregateResult is the outcome of one save action. Partial failure is a
// first class result: Failures names exactly which sections did not
// persist so the user can act on them.
type AggregateResult struct {
	State          SaveState
	Outcomes       map[Kind]Outcome
	Failures       []SectionFailure
	FailedSections mapset.Set[Kind]
}

// Editor owns the confirmed and draft copies of the profile aggregate for
// the duration of one view/edit session. The confirmed copy only ever
// changes when every section of a save succeeds.
type Editor struct {
	service  Service
	repo     Repository
	sessions session.Store
	deriver  session.Deriver
	logger   *zap.SugaredLogger

	mu         sync.Mutex
	confirmed  *Aggregate
	draft      *Aggregate
	editing    bool
	saving     bool
	generation uuid.UUID
}

func NewEditor(service Service, repo Repository, sessions session.Store, deriver session.Deriver, logger *zap.SugaredLogger) *Editor {
	return &Editor{
		service:  service,
		repo:     repo,
		sessions: sessions,
		deriver:  deriver,
		logger:   logger,
	}
}

// Load populates the aggregate from a full overview fetch and resets the
// draft to match it.
func (e *Editor) Load(ctx context.Context) error {
	aggregate, err := e.repo.Overview(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.confirmed = aggregate
	e.draft = deepcopy.Copy(aggregate).(*Aggregate)
	e.editing = false
	return nil
}

// Draft returns the editable copy. Mutations apply to the next save only.
func (e *Editor) Draft() *Aggregate {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		e.draft = &Aggregate{Sections: NewDraft()}
	}
	return e.draft
}

// Confirmed returns a copy of the last server-acknowledged aggregate.
func (e *Editor) Confirmed() *Aggregate {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.confirmed == nil {
		return nil
	}
	return deepcopy.Copy(e.confirmed).(*Aggregate)
}

func (e *Editor) BeginEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = true
}

func (e *Editor) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// CancelEdit throws the draft away and invalidates any in-flight save, so
// stale results cannot apply to the restored draft.
func (e *Editor) CancelEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.confirmed != nil {
		e.draft = deepcopy.Copy(e.confirmed).(*Aggregate)
	}
	e.editing = false
	e.generation = uuid.New()
}

func (e *Editor) State() SaveState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.saving {
		return StateSaving
	}
	return StateIdle
}

type sectionResult struct {
	kind    Kind
	outcome Outcome
	err     error
}

// SubmitAll drives one save action: all four section upserts issued
// concurrently, joined, then resolved into a single aggregate outcome.
//
// The sections are independent aggregates so no ordering is guaranteed
// between them. A second submit while one is in flight is rejected, and a
// save superseded by CancelEdit or a newer submit reports ErrSuperseded
// with its results disregarded.
func (e *Editor) SubmitAll(ctx context.Context) (*AggregateResult, error) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	if e.draft == nil {
		e.mu.Unlock()
		return nil, ErrNoDraft
	}
	e.saving = true
	generation := uuid.New()
	e.generation = generation
	snapshot := deepcopy.Copy(e.draft).(*Aggregate)
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.saving = false
		e.mu.Unlock()
	}()

	identity, err := e.identity()
	if err != nil {
		return e.expireSession(generation)
	}

	results := make(chan sectionResult, len(Kinds()))
	var wg sync.WaitGroup
	for _, kind := range Kinds() {
		wg.Add(1)
		go func(kind Kind) {
			defer wg.Done()
			outcome, err := e.service.UpsertSection(ctx, kind, &snapshot.Sections, identity.UserID)
			results <- sectionResult{kind: kind, outcome: outcome, err: err}
		}(kind)
	}
	wg.Wait()
	close(results)

	outcomes := make(map[Kind]Outcome)
	var failures []SectionFailure
	unauthorized := false
	for result := range results {
		switch {
		case result.err == nil:
			outcomes[result.kind] = result.outcome
		case glucoerrors.IsUnauthorized(result.err):
			unauthorized = true
		default:
			failures = append(failures, SectionFailure{Kind: result.kind, Err: result.err})
		}
	}

	e.mu.Lock()
	if e.generation != generation {
		e.mu.Unlock()
		return nil, ErrSuperseded
	}

	if unauthorized {
		e.mu.Unlock()
		// The transport already cleared the store on the 401; clearing
		// again is an idempotent whole-value delete.
		if err := e.sessions.Clear(); err != nil {
			e.logger.Warnw("failed to clear session", "error", err)
		}
		// Results of the other calls are disregarded: nothing is applied
		// to the confirmed copy once the session is invalid.
		return &AggregateResult{
			State:          StateSessionExpired,
			FailedSections: mapset.NewSet[Kind](),
		}, nil
	}

	if len(failures) > 0 {
		// Draft stays intact, the page stays in edit mode, and the user
		// sees exactly which sections did not persist.
		failed := mapset.NewSet[Kind]()
		for _, failure := range failures {
			failed.Add(failure.Kind)
		}
		e.mu.Unlock()
		return &AggregateResult{
			State:          StatePartiallyFailed,
			Outcomes:       outcomes,
			Failures:       failures,
			FailedSections: failed,
		}, nil
	}

	e.confirmed = snapshot
	e.editing = false
	e.mu.Unlock()

	// Reconcile server-derived fields (age recomputed from the stored
	// birth date, canonical units) with a full re-fetch. A failed refresh
	// does not demote the save.
	if err := e.refresh(ctx, generation); err != nil {
		e.logger.Warnw("profile refresh after save failed", "error", err)
	}

	return &AggregateResult{
		State:          StateConfirmed,
		Outcomes:       outcomes,
		FailedSections: mapset.NewSet[Kind](),
	}, nil
}

func (e *Editor) identity() (*session.Identity, error) {
	token, err := e.sessions.Token()
	if err != nil {
		return nil, err
	}
	identity, err := e.deriver.DeriveIdentity(token)
	if err != nil {
		// A token that cannot be decoded is as good as an expired one.
		return nil, err
	}
	return identity, nil
}

func (e *Editor) expireSession(generation uuid.UUID) (*AggregateResult, error) {
	if err := e.sessions.Clear(); err != nil {
		e.logger.Warnw("failed to clear session", "error", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation != generation {
		return nil, ErrSuperseded
	}
	return &AggregateResult{
		State:          StateSessionExpired,
		FailedSections: mapset.NewSet[Kind](),
	}, nil
}

func (e *Editor) refresh(ctx context.Context, generation uuid.UUID) error {
	aggregate, err := e.repo.Overview(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation != generation {
		return nil
	}
	e.confirmed = aggregate
	e.draft = deepcopy.Copy(aggregate).(*Aggregate)
	return nil
}

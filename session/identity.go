package session

import (
	"fmt"
	"sync"

	"github.com/glucomate-org/glucomate/errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/mitchellh/mapstructure"
)

const DefaultCacheSize = 1000 // Cache up to 1000 decoded tokens

// Identity is derived from the claims segment of the bearer token. It is
// decoded without signature verification and must only be used for display
// and routing, never for authorization decisions.
type Identity struct {
	UserID string
	Email  string
}

//go:generate mockgen --build_flags=--mod=mod -source=./identity.go -destination=./test/mock_deriver.go -package test MockDeriver

type Deriver interface {
	DeriveIdentity(token string) (*Identity, error)
}

type claims struct {
	Subject  string `mapstructure:"sub"`
	UserID   string `mapstructure:"user_id"`
	ID       string `mapstructure:"id"`
	Identity string `mapstructure:"identity"`
	Email    string `mapstructure:"email"`
}

// userID returns the first populated claim the backend is known to use as
// the user identifier.
func (c *claims) userID() string {
	for _, candidate := range []string{c.Subject, c.UserID, c.ID, c.Identity} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

type deriver struct{}

var _ Deriver = &deriver{}

func NewDeriver() (Deriver, error) {
	return NewCachingDeriver(DefaultCacheSize, &deriver{})
}

func (d *deriver) DeriveIdentity(token string) (*Identity, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.MalformedToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.MalformedToken
	}

	decoded := claims{}
	if err := mapstructure.WeakDecode(map[string]interface{}(mapClaims), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.MalformedToken, err)
	}

	userID := decoded.userID()
	if userID == "" {
		return nil, fmt.Errorf("%w: no subject claim", errors.MalformedToken)
	}

	return &Identity{
		UserID: userID,
		Email:  decoded.Email,
	}, nil
}

// CachingDeriver memoizes identity derivation per token. Derivation is
// deterministic so entries never expire, the LRU only bounds memory.
type CachingDeriver struct {
	delegate Deriver
	lru      *simplelru.LRU
	mu       sync.Mutex
}

var _ Deriver = &CachingDeriver{}

func NewCachingDeriver(size int, delegate Deriver) (Deriver, error) {
	var onEvict simplelru.EvictCallback
	lru, err := simplelru.NewLRU(size, onEvict)
	if err != nil {
		return nil, err
	}

	return &CachingDeriver{
		delegate: delegate,
		lru:      lru,
	}, nil
}

func (c *CachingDeriver) DeriveIdentity(token string) (*Identity, error) {
	c.mu.Lock()
	if cached, ok := c.lru.Get(token); ok {
		c.mu.Unlock()
		identity := cached.(Identity)
		return &identity, nil
	}
	c.mu.Unlock()

	identity, err := c.delegate.DeriveIdentity(token)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	_ = c.lru.Add(token, *identity)
	c.mu.Unlock()

	return identity, nil
}

package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/mapboard/internal/common"
	"github.com/dmitrijs2005/mapboard/internal/dbx"
	"github.com/dmitrijs2005/mapboard/internal/server/config"
	"github.com/dmitrijs2005/mapboard/internal/server/models"
	"github.com/dmitrijs2005/mapboard/internal/server/repositories/cards"
	"github.com/dmitrijs2005/mapboard/internal/server/repositories/markers"
	"github.com/dmitrijs2005/mapboard/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// memStore is an in-memory stand-in for the three repositories. It keeps
// insertion order and applies the same owner filters as the SQL versions.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	cards   []*models.Card
	markers []*models.Marker

	usersErr   error
	cardsErr   error
	markersErr error
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository              { return memUsers{m} }
func (m *memStore) Cards(dbx.DBTX) cards.Repository              { return memCards{m} }
func (m *memStore) Markers(dbx.DBTX) markers.Repository          { return memMarkers{m} }

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usersErr != nil {
		return nil, r.s.usersErr
	}
	if _, ok := r.s.users[u.UserName]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.s.users[u.UserName] = &cp
	return u, nil
}

func (r memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usersErr != nil {
		return nil, r.s.usersErr
	}
	u, ok := r.s.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type memCards struct{ s *memStore }

func (r memCards) List(_ context.Context, owner string) ([]*models.Card, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.cardsErr != nil {
		return nil, r.s.cardsErr
	}
	out := make([]*models.Card, 0)
	for _, c := range r.s.cards {
		if c.Owner == owner {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memCards) Create(_ context.Context, c *models.Card) (*models.Card, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.cardsErr != nil {
		return nil, r.s.cardsErr
	}
	cp := *c
	r.s.cards = append(r.s.cards, &cp)
	return c, nil
}

func (r memCards) DeleteOwned(_ context.Context, owner, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.cardsErr != nil {
		return r.s.cardsErr
	}
	for i, c := range r.s.cards {
		if c.ID == id && c.Owner == owner {
			r.s.cards = append(r.s.cards[:i], r.s.cards[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type memMarkers struct{ s *memStore }

func (r memMarkers) List(_ context.Context, owner string) ([]*models.Marker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.markersErr != nil {
		return nil, r.s.markersErr
	}
	out := make([]*models.Marker, 0)
	for _, m := range r.s.markers {
		if m.Owner == owner {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memMarkers) Create(_ context.Context, m *models.Marker) (*models.Marker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.markersErr != nil {
		return nil, r.s.markersErr
	}
	cp := *m
	r.s.markers = append(r.s.markers, &cp)
	return m, nil
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		BcryptCost:                  4,
	}
}

package httpapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/mapboard/internal/common"
	"github.com/dmitrijs2005/mapboard/internal/server/auth"
	"github.com/dmitrijs2005/mapboard/internal/server/models"
	"github.com/dmitrijs2005/mapboard/internal/server/services"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeUsers keeps plain-text passwords and issues real tokens.
type fakeUsers struct {
	passwords map[string]string
	tokens    *auth.TokenManager
	err       error
}

func newFakeUsers(tm *auth.TokenManager) *fakeUsers {
	return &fakeUsers{passwords: map[string]string{}, tokens: tm}
}

func (f *fakeUsers) Register(_ context.Context, username, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if _, ok := f.passwords[username]; ok {
		return nil, common.ErrAlreadyExists
	}
	f.passwords[username] = password
	return &models.User{UserName: username}, nil
}

func (f *fakeUsers) Login(_ context.Context, username, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	p, ok := f.passwords[username]
	if !ok || p != password {
		return "", common.ErrorUnauthorized
	}
	return f.tokens.Issue(username)
}

type fakeCards struct {
	items []*models.Card
	seq   int
	err   error
}

func (f *fakeCards) List(_ context.Context, owner string) ([]*models.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Card
	for _, c := range f.items {
		if c.Owner == owner {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCards) Create(_ context.Context, owner string, in services.CardInput) (*models.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	if in.Title == nil {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	f.seq++
	c := &models.Card{ID: strconv.Itoa(f.seq), Title: *in.Title, Owner: owner}
	f.items = append(f.items, c)
	return c, nil
}

func (f *fakeCards) Delete(_ context.Context, owner, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, c := range f.items {
		if c.ID == id && c.Owner == owner {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeMarkers struct {
	items []*models.Marker
	err   error
}

func (f *fakeMarkers) MapView(_ context.Context, owner string) (*models.MapView, error) {
	if f.err != nil {
		return nil, f.err
	}
	view := &models.MapView{Center: services.DefaultMapCenter, Zoom: services.DefaultMapZoom}
	for _, m := range f.items {
		if m.Owner == owner {
			view.Markers = append(view.Markers, m)
		}
	}
	return view, nil
}

func (f *fakeMarkers) Create(_ context.Context, owner string, in services.MarkerInput) (*models.Marker, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(in.Position) != 2 {
		return nil, fmt.Errorf("%w: position must have exactly 2 elements", common.ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	m := &models.Marker{
		ID:       strconv.Itoa(len(f.items) + 1),
		Position: models.Position{in.Position[0], in.Position[1]},
		Title:    in.Title,
		Owner:    owner,
	}
	f.items = append(f.items, m)
	return m, nil
}

type fakeHealth struct{ err error }

func (f fakeHealth) PingContext(context.Context) error { return f.err }

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mapboard/internal/common"
	"github.com/dmitrijs2005/mapboard/internal/dbx"
	"github.com/dmitrijs2005/mapboard/internal/server/models"
	"github.com/dmitrijs2005/mapboard/internal/server/repositories/repomanager"
)

// CardInput is the client-supplied part of a card. Title must be present
// but may be empty.
type CardInput struct {
	Title *string `json:"title" validate:"required"`
}

// CardService manages dashboard cards; owner always comes from the
// authenticated identity.
type CardService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewCardService(db dbx.DBTX, m repomanager.RepositoryManager) *CardService {
	return &CardService{db: db, repomanager: m}
}

func (s *CardService) List(ctx context.Context, owner string) ([]*models.Card, error) {
	return s.repomanager.Cards(s.db).List(ctx, owner)
}

func (s *CardService) Create(ctx context.Context, owner string, in CardInput) (*models.Card, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	card := &models.Card{
		ID:    uuid.NewString(),
		Title: *in.Title,
		Owner: owner,
	}

	c, err := s.repomanager.Cards(s.db).Create(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("error creating card: %w", err)
	}
	return c, nil
}

// Delete removes the owner's card. Ids that are not UUIDs cannot match any
// card and are reported as common.ErrorNotFound without touching the store.
func (s *CardService) Delete(ctx context.Context, owner, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return common.ErrorNotFound
	}

	err = s.repomanager.Cards(s.db).DeleteOwned(ctx, owner, parsed.String())
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error deleting card: %w", err)
	}
	return err
}

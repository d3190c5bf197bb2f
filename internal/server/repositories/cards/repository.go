package cards

import (
	"context"

	"github.com/dmitrijs2005/mapboard/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, owner string) ([]*models.Card, error)
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	DeleteOwned(ctx context.Context, owner, id string) error
}

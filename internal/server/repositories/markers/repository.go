package markers

import (
	"context"

	"github.com/dmitrijs2005/mapboard/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, owner string) ([]*models.Marker, error)
	Create(ctx context.Context, marker *models.Marker) (*models.Marker, error)
}

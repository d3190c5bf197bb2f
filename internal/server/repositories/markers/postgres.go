// Package markers provides PostgreSQL-backed storage for map markers.
package markers

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mapboard/internal/dbx"
	"github.com/dmitrijs2005/mapboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the owner's markers in storage order.
func (r *PostgresRepository) List(ctx context.Context, owner string) ([]*models.Marker, error) {
	query := `SELECT id, latitude, longitude, title, owner FROM markers WHERE owner = $1`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Marker, 0)
	for rows.Next() {
		var item models.Marker
		if err := rows.Scan(&item.ID, &item.Position[0], &item.Position[1], &item.Title, &item.Owner); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, marker *models.Marker) (*models.Marker, error) {
	query := `INSERT INTO markers (id, latitude, longitude, title, owner) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		marker.ID, marker.Position.Latitude(), marker.Position.Longitude(), marker.Title, marker.Owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return marker, nil
}

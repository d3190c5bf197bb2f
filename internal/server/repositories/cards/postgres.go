// Package cards provides PostgreSQL-backed storage for dashboard cards.
// Every query is filtered by owner.
package cards

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mapboard/internal/common"
	"github.com/dmitrijs2005/mapboard/internal/dbx"
	"github.com/dmitrijs2005/mapboard/internal/server/models"
)

// PostgresRepository implements card storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the owner's cards in storage order.
func (r *PostgresRepository) List(ctx context.Context, owner string) ([]*models.Card, error) {
	query := `SELECT id, title, owner FROM cards WHERE owner = $1`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Card, 0)
	for rows.Next() {
		var item models.Card
		if err := rows.Scan(&item.ID, &item.Title, &item.Owner); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Create stores card as given; the caller sets ID and Owner.
func (r *PostgresRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	query := `INSERT INTO cards (id, title, owner) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, card.ID, card.Title, card.Owner); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return card, nil
}

// DeleteOwned removes the card only when both id and owner match, in a
// single statement. No match yields common.ErrorNotFound.
func (r *PostgresRepository) DeleteOwned(ctx context.Context, owner, id string) error {
	query := `DELETE FROM cards WHERE id = $1 AND owner = $2`

	res, err := r.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mapboard/internal/dbx"
	"github.com/dmitrijs2005/mapboard/internal/server/repositories/cards"
	"github.com/dmitrijs2005/mapboard/internal/server/repositories/markers"
	"github.com/dmitrijs2005/mapboard/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle and owns the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Cards(db dbx.DBTX) cards.Repository
	Markers(db dbx.DBTX) markers.Repository
}

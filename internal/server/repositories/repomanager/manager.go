// Package repomanager vends repositories bound to a DBTX and runs schema
// migrations for the configured backend.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/quizauth/internal/dbx"
	"github.com/dmitrijs2005/quizauth/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

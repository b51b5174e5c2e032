package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/quizauth/internal/dbx"
	"github.com/dmitrijs2005/quizauth/internal/server/repositories/users"
)

// MemoryRepositoryManager serves one process-local store regardless of the
// DBTX it is given. It backs deployments without a database DSN.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() RepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

// RunMigrations is a no-op: there is no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

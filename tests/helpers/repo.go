// Package helpers provides shared test constructors.
package helpers

import (
	"testing"

	"github.com/vitracka/concierge/internal/repository"
)

// NewTestRepository creates an in-memory sqlite repository scoped to
// the test.
func NewTestRepository(t *testing.T) *repository.SQLiteRepository {
	t.Helper()

	repo, err := repository.NewSQLiteRepository(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite repository: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

// AngelaMos | 2026
// migrate_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/auraf":   "pgx5://u:p@db:5432/auraf",
		"postgresql://u:p@db:5432/auraf": "pgx5://u:p@db:5432/auraf",
		"pgx5://u:p@db:5432/auraf":       "pgx5://u:p@db:5432/auraf",
	}

	for in, want := range tests {
		assert.Equal(t, want, migrateURL(in), in)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.NotEmpty(t, entries)
	assert.Zero(t, len(entries)%2, "every up migration needs a down")
}

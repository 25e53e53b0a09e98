package sqlxrepos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kelasdev/kelas/storage/database"
	sqlxrepos "github.com/kelasdev/kelas/storage/database/sqlx"
	"github.com/kelasdev/kelas/storage/database/storagetest"
)

// newRepositories returns repositories backed by a fresh, migrated, in-memory sqlite database.
func newRepositories(t *testing.T) storagetest.Repositories {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	return storagetest.Repositories{
		Courses:    sqlxrepos.NewCourseRepository(db),
		Onboarding: sqlxrepos.NewOnboardingRepository(db),
		Progress:   sqlxrepos.NewProgressRepository(db),
		Stats:      sqlxrepos.NewStatsRepository(db),
	}
}

func TestCourseRepository(t *testing.T) {
	storagetest.TestCourseRepository(t, newRepositories(t))
}

func TestOnboardingRepository(t *testing.T) {
	storagetest.TestOnboardingRepository(t, newRepositories(t))
}

func TestProgressRepository(t *testing.T) {
	storagetest.TestProgressRepository(t, newRepositories(t))
}

func TestStatsRepository(t *testing.T) {
	storagetest.TestStatsRepository(t, newRepositories(t))
}

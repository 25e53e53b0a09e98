package inmemdb_test

import (
	"testing"

	inmemdb "github.com/kelasdev/kelas/storage/database/inmem"
	"github.com/kelasdev/kelas/storage/database/storagetest"
)

func newRepositories() storagetest.Repositories {
	db := inmemdb.Open()
	return storagetest.Repositories{
		Courses:    inmemdb.NewCourseRepository(db),
		Onboarding: inmemdb.NewOnboardingRepository(db),
		Progress:   inmemdb.NewProgressRepository(db),
		Stats:      inmemdb.NewStatsRepository(db),
	}
}

func TestCourseRepository(t *testing.T) {
	storagetest.TestCourseRepository(t, newRepositories())
}

func TestOnboardingRepository(t *testing.T) {
	storagetest.TestOnboardingRepository(t, newRepositories())
}

func TestProgressRepository(t *testing.T) {
	storagetest.TestProgressRepository(t, newRepositories())
}

func TestStatsRepository(t *testing.T) {
	storagetest.TestStatsRepository(t, newRepositories())
}

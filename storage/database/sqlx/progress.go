package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core/progress"
)

type (
	enrollmentRow struct {
		CourseID   string `db:"course_id"`
		EnrolledAt int64  `db:"enrolled_at"`
	}

	progressRepository struct {
		db *sqlx.DB
	}
)

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) progress.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) Enroll(ctx context.Context, userID, courseID string, at time.Time) error {
	q := repo.db.Rebind("INSERT INTO enrollments (user_id, course_id, enrolled_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING")
	if _, err := repo.db.ExecContext(ctx, q, userID, courseID, toMillis(at)); err != nil {
		return errors.Wrap(err, "inserting enrollment")
	}
	return nil
}

func (repo *progressRepository) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	var n int
	q := repo.db.Rebind("SELECT COUNT(*) FROM enrollments WHERE user_id = ? AND course_id = ?")
	if err := repo.db.GetContext(ctx, &n, q, userID, courseID); err != nil {
		return false, errors.Wrap(err, "counting enrollments")
	}
	return n > 0, nil
}

func (repo *progressRepository) CompleteModule(ctx context.Context, userID, courseID, moduleID string, at time.Time) error {
	q := repo.db.Rebind(`
INSERT INTO module_progress (user_id, course_id, module_id, completed_at) VALUES (?, ?, ?, ?)
ON CONFLICT DO NOTHING`)
	if _, err := repo.db.ExecContext(ctx, q, userID, courseID, moduleID, toMillis(at)); err != nil {
		return errors.Wrap(err, "inserting module progress")
	}
	return nil
}

func (repo *progressRepository) CompletedModules(ctx context.Context, userID, courseID string) ([]string, error) {
	ids := make([]string, 0)
	q := repo.db.Rebind("SELECT module_id FROM module_progress WHERE user_id = ? AND course_id = ? ORDER BY completed_at, module_id")
	if err := repo.db.SelectContext(ctx, &ids, q, userID, courseID); err != nil {
		return nil, errors.Wrap(err, "querying module progress")
	}
	return ids, nil
}

func (repo *progressRepository) Enrollments(ctx context.Context, userID string) ([]progress.Enrollment, error) {
	var rows []enrollmentRow
	q := repo.db.Rebind("SELECT course_id, enrolled_at FROM enrollments WHERE user_id = ? ORDER BY enrolled_at DESC, course_id")
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}

	enrollments := make([]progress.Enrollment, len(rows))
	for i, r := range rows {
		enrollments[i] = progress.Enrollment{CourseID: r.CourseID, EnrolledAt: fromMillis(r.EnrolledAt)}
	}
	return enrollments, nil
}

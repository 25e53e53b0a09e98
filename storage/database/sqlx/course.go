package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/kelasdev/kelas/core/content"
	"github.com/kelasdev/kelas/core/course"
)

const (
	courseColumns = "id, title, description, difficulty, language, image_url, is_published, created_at, updated_at"
	moduleColumns = "course_id, id, module_type, title, position, content"
)

type (
	courseRow struct {
		ID          string      `db:"id"`
		Title       string      `db:"title"`
		Description string      `db:"description"`
		Difficulty  string      `db:"difficulty"`
		Language    string      `db:"language"`
		ImageURL    null.String `db:"image_url"`
		IsPublished bool        `db:"is_published"`
		CreatedAt   int64       `db:"created_at"`
		UpdatedAt   int64       `db:"updated_at"`
	}

	moduleRow struct {
		CourseID string `db:"course_id"`
		ID       string `db:"id"`
		Type     string `db:"module_type"`
		Title    string `db:"title"`
		Position int    `db:"position"`
		Content  string `db:"content"`
	}

	courseRepository struct {
		db *sqlx.DB
	}
)

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func toCourseRow(c course.Course) courseRow {
	return courseRow{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  string(c.Difficulty),
		Language:    c.Language,
		ImageURL:    null.NewString(c.ImageURL, c.ImageURL != ""),
		IsPublished: c.IsPublished,
		CreatedAt:   toMillis(c.CreatedAt),
		UpdatedAt:   toMillis(c.UpdatedAt),
	}
}

func (r courseRow) course(mods []course.Module) course.Course {
	if mods == nil {
		mods = make([]course.Module, 0)
	}
	return course.Course{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Difficulty:  course.Difficulty(r.Difficulty),
		Language:    r.Language,
		ImageURL:    r.ImageURL.String,
		IsPublished: r.IsPublished,
		Modules:     mods,
		CreatedAt:   fromMillis(r.CreatedAt),
		UpdatedAt:   fromMillis(r.UpdatedAt),
	}
}

func toModuleRow(courseID string, m course.Module) (moduleRow, error) {
	data, err := json.Marshal(m.Content)
	if err != nil {
		return moduleRow{}, errors.Wrapf(err, "encoding content of module %s", m.ID)
	}
	return moduleRow{
		CourseID: courseID,
		ID:       m.ID,
		Type:     string(m.Type),
		Title:    m.Title,
		Position: m.Order,
		Content:  string(data),
	}, nil
}

func (r moduleRow) module() (course.Module, error) {
	c, err := content.Decode(content.Type(r.Type), []byte(r.Content))
	if err != nil {
		return course.Module{}, errors.Wrapf(err, "decoding module %s", r.ID)
	}
	return course.Module{ID: r.ID, Type: content.Type(r.Type), Title: r.Title, Order: r.Position, Content: c}, nil
}

// trapNoRowsErr maps "no rows" err to course.ErrNotFound
func (repo *courseRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	q := repo.db.Rebind("INSERT INTO courses (" + courseColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	row := toCourseRow(c)
	_, err := repo.db.ExecContext(ctx, q,
		row.ID, row.Title, row.Description, row.Difficulty, row.Language, row.ImageURL, row.IsPublished, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return row.course(nil), nil
}

func (repo *courseRepository) QueryPublishedCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	q := repo.db.Rebind("SELECT " + courseColumns + " FROM courses WHERE is_published = ? ORDER BY created_at DESC, id")
	if err := repo.db.SelectContext(ctx, &rows, q, true); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	if len(rows) == 0 {
		return make([]course.Course, 0), nil
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	mods, err := repo.queryModules(ctx, repo.db, ids...)
	if err != nil {
		return nil, err
	}

	courses := make([]course.Course, len(rows))
	for i, r := range rows {
		courses[i] = r.course(mods[r.ID])
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var row courseRow
	q := repo.db.Rebind("SELECT " + courseColumns + " FROM courses WHERE id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "getting course")
	}

	mods, err := repo.queryModules(ctx, repo.db, id)
	if err != nil {
		return course.Course{}, err
	}
	return row.course(mods[id]), nil
}

// queryModules returns the modules of the given courses, by course id, in stored order.
func (repo *courseRepository) queryModules(ctx context.Context, db sqlx.QueryerContext, courseIDs ...string) (map[string][]course.Module, error) {
	q, args, err := sqlx.In("SELECT "+moduleColumns+" FROM course_modules WHERE course_id IN (?) ORDER BY course_id, position", courseIDs)
	if err != nil {
		return nil, errors.Wrap(err, "building modules query")
	}

	var rows []moduleRow
	if err = sqlx.SelectContext(ctx, db, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying modules")
	}

	mods := make(map[string][]course.Module, len(courseIDs))
	for _, r := range rows {
		m, err := r.module()
		if err != nil {
			return nil, err
		}
		mods[r.CourseID] = append(mods[r.CourseID], m)
	}
	return mods, nil
}

func (repo *courseRepository) ReplaceCourseModules(ctx context.Context, courseID string, modules []course.Module, updatedAt time.Time) error {
	rows := make([]moduleRow, 0, len(modules))
	for _, m := range modules {
		row, err := toModuleRow(courseID, m)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return withTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind("UPDATE courses SET updated_at = ? WHERE id = ?"), toMillis(updatedAt), courseID)
		if err != nil {
			return errors.Wrap(err, "updating course")
		}
		if found, err := rowsAffected(res); err != nil {
			return errors.Wrap(err, "updating course")
		} else if !found {
			return course.ErrNotFound
		}

		if _, err = tx.ExecContext(ctx, tx.Rebind("DELETE FROM course_modules WHERE course_id = ?"), courseID); err != nil {
			return errors.Wrap(err, "deleting modules")
		}
		if len(rows) == 0 {
			return nil
		}
		q := "INSERT INTO course_modules (" + moduleColumns + ") VALUES (:course_id, :id, :module_type, :title, :position, :content)"
		if _, err = tx.NamedExecContext(ctx, q, rows); err != nil {
			return errors.Wrap(err, "inserting modules")
		}
		return nil
	})
}

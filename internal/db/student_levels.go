package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Spok95/school-backoffice/internal/models"
)

// CreateStudentLevel фиксирует оценку уровня. Если оценка привязана к
// потоку, ученик заодно записывается в группу.
func CreateStudentLevel(ctx context.Context, database *sql.DB, lvl models.StudentLevel) (int64, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `
INSERT INTO student_levels (student_id, course_id, level, date)
VALUES ($1, $2, $3, $4)
RETURNING id`, lvl.StudentID, lvl.CourseID, lvl.Level, lvl.Date).Scan(&id)
	if err != nil {
		return 0, err
	}

	if lvl.CourseID != nil {
		_, err = tx.ExecContext(ctx, `
INSERT INTO classes (student_id, course_id) VALUES ($1, $2)`, lvl.StudentID, *lvl.CourseID)
		if err != nil {
			return 0, err
		}
	}
	return id, tx.Commit()
}

func UpdateStudentLevel(ctx context.Context, database *sql.DB, lvl models.StudentLevel) error {
	res, err := database.ExecContext(ctx, `
UPDATE student_levels SET student_id = $1, course_id = $2, level = $3, date = $4
WHERE id = $5`, lvl.StudentID, lvl.CourseID, lvl.Level, lvl.Date, lvl.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateStudentLevel гасит оценку и снимает ученика с потока,
// на котором она была получена.
func DeactivateStudentLevel(ctx context.Context, database *sql.DB, id int64) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var studentID int64
	var courseID *int64
	err = tx.QueryRowContext(ctx, `
SELECT student_id, course_id FROM student_levels WHERE id = $1 FOR UPDATE`, id).
		Scan(&studentID, &courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if courseID != nil {
		_, err = tx.ExecContext(ctx, `
DELETE FROM classes WHERE student_id = $1 AND course_id = $2`, studentID, *courseID)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `UPDATE student_levels SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return tx.Commit()
}

type StudentLevelFilter struct {
	StudentID   int64
	StudentName string
	DateBefore  *time.Time
	DateAfter   *time.Time
}

func ListStudentLevels(ctx context.Context, database *sql.DB, f StudentLevelFilter) ([]models.StudentLevel, error) {
	rows, err := database.QueryContext(ctx, `
SELECT sl.id, sl.student_id, sl.course_id, sl.level, sl.date, sl.is_active, s.fname
FROM student_levels sl
JOIN students s ON s.id = sl.student_id
WHERE ($1 = 0 OR sl.student_id = $1)
  AND ($2 = '' OR s.fname ILIKE '%' || $2 || '%')
  AND ($3::date IS NULL OR sl.date < $3)
  AND ($4::date IS NULL OR sl.date > $4)
ORDER BY sl.date DESC, sl.id DESC`, f.StudentID, f.StudentName, f.DateBefore, f.DateAfter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.StudentLevel
	for rows.Next() {
		var lvl models.StudentLevel
		if err := rows.Scan(&lvl.ID, &lvl.StudentID, &lvl.CourseID, &lvl.Level, &lvl.Date, &lvl.IsActive, &lvl.StudentName); err != nil {
			return nil, err
		}
		result = append(result, lvl)
	}
	return result, rows.Err()
}

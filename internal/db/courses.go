package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Spok95/school-backoffice/internal/models"
)

// CreateCourse заводит поток и назначает преподавателей одной
// транзакцией.
func CreateCourse(ctx context.Context, database *sql.DB, c models.Course, teachers []models.CourseTeacher) (int64, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `
INSERT INTO courses (ctype_id, start_date, info)
VALUES ($1, $2, $3)
RETURNING id`, c.CTypeID, c.StartDate, c.Info).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := replaceCourseTeachers(ctx, tx, id, teachers); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// UpdateCourse правит поток и полностью заменяет состав преподавателей.
func UpdateCourse(ctx context.Context, database *sql.DB, c models.Course, teachers []models.CourseTeacher) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
UPDATE courses SET ctype_id = $1, start_date = $2, info = $3
WHERE id = $4`, c.CTypeID, c.StartDate, c.Info, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if err := replaceCourseTeachers(ctx, tx, c.ID, teachers); err != nil {
		return err
	}
	return tx.Commit()
}

// Замена назначений: снести старые, вставить новые. Либо всё, либо
// ничего — наполовину обновлённый состав хуже, чем старый.
func replaceCourseTeachers(ctx context.Context, tx *sql.Tx, courseID int64, teachers []models.CourseTeacher) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM course_teachers WHERE course_id = $1`, courseID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO course_teachers (teacher_id, course_id, lesson) VALUES ($1, $2, $3)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, t := range teachers {
		if t.TeacherID == 0 {
			continue
		}
		if _, err := stmt.ExecContext(ctx, t.TeacherID, courseID, t.Lesson); err != nil {
			return err
		}
	}
	return nil
}

func GetCourseByID(ctx context.Context, database *sql.DB, id int64) (*models.Course, error) {
	row := database.QueryRowContext(ctx, `
SELECT c.id, c.ctype_id, c.start_date, c.info, c.is_active,
       ct.level, ct.price, ct.hourly_price, ct.length
FROM courses c
JOIN course_types ct ON ct.id = c.ctype_id
WHERE c.id = $1`, id)

	var c models.Course
	err := row.Scan(&c.ID, &c.CTypeID, &c.StartDate, &c.Info, &c.IsActive,
		&c.Level, &c.Price, &c.HourlyPrice, &c.Length)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type CourseFilter struct {
	CTypeID     int64
	StartBefore *time.Time
	StartAfter  *time.Time
	OnlyActive  bool
}

func ListCourses(ctx context.Context, database *sql.DB, f CourseFilter) ([]models.Course, error) {
	rows, err := database.QueryContext(ctx, `
SELECT c.id, c.ctype_id, c.start_date, c.info, c.is_active,
       ct.level, ct.price, ct.hourly_price, ct.length
FROM courses c
JOIN course_types ct ON ct.id = c.ctype_id
WHERE ($1 = 0 OR c.ctype_id = $1)
  AND ($2::timestamptz IS NULL OR c.start_date < $2)
  AND ($3::timestamptz IS NULL OR c.start_date > $3)
  AND (NOT $4 OR c.is_active)
ORDER BY c.start_date DESC`, f.CTypeID, f.StartBefore, f.StartAfter, f.OnlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.CTypeID, &c.StartDate, &c.Info, &c.IsActive,
			&c.Level, &c.Price, &c.HourlyPrice, &c.Length); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func DeactivateCourse(ctx context.Context, database *sql.DB, id int64) error {
	return deactivate(ctx, database, "courses", id)
}

// ListCourseTeachers — состав преподавателей потока с именами.
func ListCourseTeachers(ctx context.Context, database *sql.DB, courseID int64) ([]models.CourseTeacher, error) {
	rows, err := database.QueryContext(ctx, `
SELECT ctr.id, ctr.teacher_id, ctr.course_id, ctr.lesson, t.lname || ' ' || t.fname
FROM course_teachers ctr
JOIN teachers t ON t.id = ctr.teacher_id
WHERE ctr.course_id = $1
ORDER BY ctr.id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.CourseTeacher
	for rows.Next() {
		var a models.CourseTeacher
		if err := rows.Scan(&a.ID, &a.TeacherID, &a.CourseID, &a.Lesson, &a.TeacherName); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// CountCourseStudents — сколько учеников ходит на поток.
func CountCourseStudents(ctx context.Context, database *sql.DB, courseID int64) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM classes WHERE course_id = $1`, courseID).Scan(&n)
	return n, err
}

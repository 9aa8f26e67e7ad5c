package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/school-backoffice/internal/models"
)

func CreateTeacher(ctx context.Context, database *sql.DB, t models.Teacher) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
INSERT INTO teachers (fname, lname, register, phone, birthday, hourly_wage)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		t.FName, t.LName, t.Register, t.Phone, t.Birthday, t.HourlyWage).Scan(&id)
	return id, err
}

func GetTeacherByID(ctx context.Context, database *sql.DB, id int64) (*models.Teacher, error) {
	row := database.QueryRowContext(ctx, `
SELECT id, fname, lname, register, phone, birthday, hourly_wage, is_active
FROM teachers WHERE id = $1`, id)

	var t models.Teacher
	err := row.Scan(&t.ID, &t.FName, &t.LName, &t.Register, &t.Phone, &t.Birthday, &t.HourlyWage, &t.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type PersonFilter struct {
	FName      string
	Register   string
	Phone      string
	OnlyActive bool
}

func ListTeachers(ctx context.Context, database *sql.DB, f PersonFilter) ([]models.Teacher, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, fname, lname, register, phone, birthday, hourly_wage, is_active
FROM teachers
WHERE ($1 = '' OR fname ILIKE '%' || $1 || '%')
  AND ($2 = '' OR register LIKE $2 || '%')
  AND ($3 = '' OR phone ILIKE '%' || $3 || '%')
  AND (NOT $4 OR is_active)
ORDER BY id`, f.FName, f.Register, f.Phone, f.OnlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Teacher
	for rows.Next() {
		var t models.Teacher
		if err := rows.Scan(&t.ID, &t.FName, &t.LName, &t.Register, &t.Phone, &t.Birthday, &t.HourlyWage, &t.IsActive); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func UpdateTeacher(ctx context.Context, database *sql.DB, t models.Teacher) error {
	res, err := database.ExecContext(ctx, `
UPDATE teachers SET fname = $1, lname = $2, register = $3, phone = $4, birthday = $5, hourly_wage = $6
WHERE id = $7`,
		t.FName, t.LName, t.Register, t.Phone, t.Birthday, t.HourlyWage, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeactivateTeacher(ctx context.Context, database *sql.DB, id int64) error {
	return deactivate(ctx, database, "teachers", id)
}

// ListTeacherCourses — назначения преподавателя (для карточки).
func ListTeacherCourses(ctx context.Context, database *sql.DB, teacherID int64) ([]models.CourseTeacher, error) {
	rows, err := database.QueryContext(ctx, `
SELECT ctr.id, ctr.teacher_id, ctr.course_id, ctr.lesson, ct.level
FROM course_teachers ctr
JOIN courses c ON c.id = ctr.course_id
JOIN course_types ct ON ct.id = c.ctype_id
WHERE ctr.teacher_id = $1
ORDER BY ctr.id`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.CourseTeacher
	for rows.Next() {
		var a models.CourseTeacher
		if err := rows.Scan(&a.ID, &a.TeacherID, &a.CourseID, &a.Lesson, &a.CourseLevel); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/school-backoffice/internal/models"
)

func CreateStudent(ctx context.Context, database *sql.DB, s models.Student) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
INSERT INTO students (fname, lname, register, phone, birthday)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		s.FName, s.LName, s.Register, s.Phone, s.Birthday).Scan(&id)
	return id, err
}

func GetStudentByID(ctx context.Context, database *sql.DB, id int64) (*models.Student, error) {
	row := database.QueryRowContext(ctx, `
SELECT id, fname, lname, register, phone, birthday, is_active
FROM students WHERE id = $1`, id)

	var s models.Student
	err := row.Scan(&s.ID, &s.FName, &s.LName, &s.Register, &s.Phone, &s.Birthday, &s.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// StudentFilter — подстрочный поиск, как в списках старой админки.
type StudentFilter struct {
	FName    string
	Register string
	Phone    string
}

func ListStudents(ctx context.Context, database *sql.DB, f StudentFilter) ([]models.Student, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, fname, lname, register, phone, birthday, is_active
FROM students
WHERE ($1 = '' OR fname ILIKE '%' || $1 || '%')
  AND ($2 = '' OR register ILIKE '%' || $2 || '%')
  AND ($3 = '' OR phone ILIKE '%' || $3 || '%')
ORDER BY id`, f.FName, f.Register, f.Phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.FName, &s.LName, &s.Register, &s.Phone, &s.Birthday, &s.IsActive); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func UpdateStudent(ctx context.Context, database *sql.DB, s models.Student) error {
	res, err := database.ExecContext(ctx, `
UPDATE students SET fname = $1, lname = $2, register = $3, phone = $4, birthday = $5
WHERE id = $6`,
		s.FName, s.LName, s.Register, s.Phone, s.Birthday, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeactivateStudent(ctx context.Context, database *sql.DB, id int64) error {
	return deactivate(ctx, database, "students", id)
}

// ListStudentClasses — на какие потоки записан ученик (для карточки).
func ListStudentClasses(ctx context.Context, database *sql.DB, studentID int64) ([]models.Course, error) {
	rows, err := database.QueryContext(ctx, `
SELECT c.id, c.ctype_id, c.start_date, c.info, c.is_active,
       ct.level, ct.price, ct.hourly_price, ct.length
FROM classes cl
JOIN courses c ON c.id = cl.course_id
JOIN course_types ct ON ct.id = c.ctype_id
WHERE cl.student_id = $1
ORDER BY c.start_date`, studentID)
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

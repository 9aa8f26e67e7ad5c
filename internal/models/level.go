package models

import "time"

// StudentLevel — датированная оценка уровня ученика, опционально
// привязанная к потоку, на котором она получена.
type StudentLevel struct {
	ID        int64     `db:"id"`
	StudentID int64     `db:"student_id"`
	CourseID  *int64    `db:"course_id"`
	Level     Level     `db:"level"`
	Date      time.Time `db:"date"`
	IsActive  bool      `db:"is_active"`

	StudentName string `db:"student_name"`
}

package models

import "time"

// CourseType — шаблон цены и длительности, от него наследуют цену все
// запущенные курсы этого уровня.
type CourseType struct {
	ID          int64   `db:"id"`
	Price       int64   `db:"price"`
	Length      int     `db:"length"`
	HourlyPrice int64   `db:"hourly_price"`
	Level       string  `db:"level"`
	Info        *string `db:"info"`
	IsActive    bool    `db:"is_active"`
}

// Course — конкретный запущенный поток.
type Course struct {
	ID        int64     `db:"id"`
	CTypeID   int64     `db:"ctype_id"`
	StartDate time.Time `db:"start_date"`
	Info      *string   `db:"info"`
	IsActive  bool      `db:"is_active"`

	// денормализованные поля из course_types, заполняются при чтении
	Level       string `db:"level"`
	Price       int64  `db:"price"`
	HourlyPrice int64  `db:"hourly_price"`
	Length      int    `db:"length"`
}

// CourseTeacher — назначение преподавателя на поток с темой занятий.
type CourseTeacher struct {
	ID        int64  `db:"id"`
	TeacherID int64  `db:"teacher_id"`
	CourseID  int64  `db:"course_id"`
	Lesson    string `db:"lesson"`

	TeacherName string `db:"teacher_name"`
	CourseLevel string `db:"level"`
}

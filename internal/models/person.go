package models

import "time"

type Student struct {
	ID       int64      `db:"id"`
	FName    string     `db:"fname"`
	LName    *string    `db:"lname"`
	Register *string    `db:"register"`
	Phone    string     `db:"phone"`
	Birthday *time.Time `db:"birthday"`
	IsActive bool       `db:"is_active"`
}

// ShortName — «Ф.Имя», как печатается в договорах.
func (s Student) ShortName() string {
	if s.LName != nil && *s.LName != "" {
		r := []rune(*s.LName)
		return string(r[0]) + "." + s.FName
	}
	return s.FName
}

type Teacher struct {
	ID         int64     `db:"id"`
	FName      string    `db:"fname"`
	LName      string    `db:"lname"`
	Register   string    `db:"register"`
	Phone      string    `db:"phone"`
	Birthday   time.Time `db:"birthday"`
	HourlyWage int64     `db:"hourly_wage"`
	IsActive   bool      `db:"is_active"`
}

func (t Teacher) ShortName() string {
	if t.LName != "" {
		r := []rune(t.LName)
		return string(r[0]) + "." + t.FName
	}
	return t.FName
}

type Worker struct {
	ID          int64     `db:"id"`
	FName       string    `db:"fname"`
	LName       string    `db:"lname"`
	Register    string    `db:"register"`
	Phone       string    `db:"phone"`
	Birthday    time.Time `db:"birthday"`
	MonthlyWage int64     `db:"monthly_wage"`
	IsActive    bool      `db:"is_active"`
}

func (w Worker) ShortName() string {
	if w.LName != "" {
		r := []rune(w.LName)
		return string(r[0]) + "." + w.FName
	}
	return w.FName
}

package models

// SalaryRecord — начисление за период (год, месяц, смена).
// Заполняется ровно одно из полей TeacherID/WorkerID.
type SalaryRecord struct {
	ID         int64  `db:"id"`
	TeacherID  *int64 `db:"teacher_id"`
	WorkerID   *int64 `db:"worker_id"`
	Salary     int64  `db:"salary"`
	WorkedHour int    `db:"worked_hour"`
	Year       int    `db:"year"`
	Month      Month  `db:"month"`
	Shift      Shift  `db:"mshift"`

	PersonName string `db:"person_name"`
}

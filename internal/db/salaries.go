package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/school-backoffice/internal/models"
	"github.com/Spok95/school-backoffice/internal/payroll"
)

// PaidTeacherIDs — кому из преподавателей уже начислено за период.
func PaidTeacherIDs(ctx context.Context, database *sql.DB, year int, month models.Month, shift models.Shift) (map[int64]bool, error) {
	return paidIDs(ctx, database, "teacher_id", year, month, shift)
}

// PaidWorkerIDs — то же для сотрудников.
func PaidWorkerIDs(ctx context.Context, database *sql.DB, year int, month models.Month, shift models.Shift) (map[int64]bool, error) {
	return paidIDs(ctx, database, "worker_id", year, month, shift)
}

func paidIDs(ctx context.Context, database *sql.DB, column string, year int, month models.Month, shift models.Shift) (map[int64]bool, error) {
	rows, err := database.QueryContext(ctx, `
SELECT `+column+` FROM teacher_salaries
WHERE year = $1 AND month = $2 AND mshift = $3 AND `+column+` IS NOT NULL`,
		year, month, shift)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paid := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		paid[id] = true
	}
	return paid, rows.Err()
}

// SaveSalaryBatch пишет подготовленный пакет: строки зарплат и
// расходные операции. Либо весь пакет, либо ничего — при любом
// нарушении уникальности откатывается всё.
func SaveSalaryBatch(ctx context.Context, database *sql.DB, b payroll.Batch) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	salStmt, err := tx.PrepareContext(ctx, `
INSERT INTO teacher_salaries (teacher_id, worker_id, salary, worked_hour, year, month, mshift)
VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return err
	}
	defer salStmt.Close()

	for _, r := range b.Records {
		if _, err := salStmt.ExecContext(ctx, r.TeacherID, r.WorkerID, r.Salary, r.WorkedHour, r.Year, r.Month, r.Shift); err != nil {
			return err
		}
	}

	txnStmt, err := tx.PrepareContext(ctx, `
INSERT INTO transactions (amount, txn_type, txn_date) VALUES ($1, $2, $3)`)
	if err != nil {
		return err
	}
	defer txnStmt.Close()

	for _, t := range b.Txns {
		if _, err := txnStmt.ExecContext(ctx, t.Amount, t.Type, t.Date); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type SalaryFilter struct {
	PersonName string
	Year       int
	Month      string
	// Kind: "teacher" или "worker"; пусто — все
	Kind string
}

func ListSalaries(ctx context.Context, database *sql.DB, f SalaryFilter) ([]models.SalaryRecord, error) {
	rows, err := database.QueryContext(ctx, `
SELECT ts.id, ts.teacher_id, ts.worker_id, ts.salary, ts.worked_hour, ts.year, ts.month, ts.mshift,
       COALESCE(t.lname || ' ' || t.fname, w.lname || ' ' || w.fname, '')
FROM teacher_salaries ts
LEFT JOIN teachers t ON t.id = ts.teacher_id
LEFT JOIN workers w ON w.id = ts.worker_id
WHERE ($1 = '' OR t.fname ILIKE '%' || $1 || '%' OR w.fname ILIKE '%' || $1 || '%')
  AND ($2 = 0 OR ts.year = $2)
  AND ($3 = '' OR ts.month = $3)
  AND ($4 = '' OR ($4 = 'teacher' AND ts.teacher_id IS NOT NULL) OR ($4 = 'worker' AND ts.worker_id IS NOT NULL))
ORDER BY ts.year DESC, ts.month, ts.id`, f.PersonName, f.Year, f.Month, f.Kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.SalaryRecord
	for rows.Next() {
		var r models.SalaryRecord
		if err := rows.Scan(&r.ID, &r.TeacherID, &r.WorkerID, &r.Salary, &r.WorkedHour, &r.Year, &r.Month, &r.Shift, &r.PersonName); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/school-backoffice/internal/models"
)

func CreateWorker(ctx context.Context, database *sql.DB, w models.Worker) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
INSERT INTO workers (fname, lname, register, phone, birthday, monthly_wage)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		w.FName, w.LName, w.Register, w.Phone, w.Birthday, w.MonthlyWage).Scan(&id)
	return id, err
}

func GetWorkerByID(ctx context.Context, database *sql.DB, id int64) (*models.Worker, error) {
	row := database.QueryRowContext(ctx, `
SELECT id, fname, lname, register, phone, birthday, monthly_wage, is_active
FROM workers WHERE id = $1`, id)

	var w models.Worker
	err := row.Scan(&w.ID, &w.FName, &w.LName, &w.Register, &w.Phone, &w.Birthday, &w.MonthlyWage, &w.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func ListWorkers(ctx context.Context, database *sql.DB, f PersonFilter) ([]models.Worker, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, fname, lname, register, phone, birthday, monthly_wage, is_active
FROM workers
WHERE ($1 = '' OR fname ILIKE '%' || $1 || '%')
  AND ($2 = '' OR register LIKE $2 || '%')
  AND ($3 = '' OR phone ILIKE '%' || $3 || '%')
  AND (NOT $4 OR is_active)
ORDER BY id`, f.FName, f.Register, f.Phone, f.OnlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Worker
	for rows.Next() {
		var w models.Worker
		if err := rows.Scan(&w.ID, &w.FName, &w.LName, &w.Register, &w.Phone, &w.Birthday, &w.MonthlyWage, &w.IsActive); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

func UpdateWorker(ctx context.Context, database *sql.DB, w models.Worker) error {
	res, err := database.ExecContext(ctx, `
UPDATE workers SET fname = $1, lname = $2, register = $3, phone = $4, birthday = $5, monthly_wage = $6
WHERE id = $7`,
		w.FName, w.LName, w.Register, w.Phone, w.Birthday, w.MonthlyWage, w.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeactivateWorker(ctx context.Context, database *sql.DB, id int64) error {
	return deactivate(ctx, database, "workers", id)
}

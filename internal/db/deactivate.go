package db

import (
	"context"
	"database/sql"
)

// «Удаление» в системе мягкое: строка остаётся навсегда, снимается
// только флаг. Одна операция на все сущности.
func deactivate(ctx context.Context, database *sql.DB, table string, id int64) error {
	res, err := database.ExecContext(ctx, `UPDATE `+table+` SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

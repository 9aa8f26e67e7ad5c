package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/Spok95/school-backoffice/internal/models"
)

// CreateTransaction — ручная запись в леджер (прочий доход/расход).
func CreateTransaction(ctx context.Context, database *sql.DB, t models.Transaction) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
INSERT INTO transactions (amount, txn_type, txn_method, txn_date, info, contract_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		t.Amount, t.Type, t.Method, t.Date, t.Info, t.ContractID).Scan(&id)
	return id, err
}

func UpdateTransaction(ctx context.Context, database *sql.DB, t models.Transaction) error {
	res, err := database.ExecContext(ctx, `
UPDATE transactions SET amount = $1, txn_type = $2, txn_method = $3, txn_date = $4, info = $5
WHERE id = $6`,
		t.Amount, t.Type, t.Method, t.Date, t.Info, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeactivateTransaction(ctx context.Context, database *sql.DB, id int64) error {
	return deactivate(ctx, database, "transactions", id)
}

// VerifyTransaction ставит отметку сверки. Дорога в одну сторону:
// снять verified нельзя, повторный вызов ничего не меняет.
func VerifyTransaction(ctx context.Context, database *sql.DB, id int64) error {
	res, err := database.ExecContext(ctx, `UPDATE transactions SET verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type TxnFilter struct {
	Type       string
	DateBefore *time.Time
	DateAfter  *time.Time
}

// TxnTotals — суммы по выборке; доход/расход определяется суффиксом
// кода типа, как считалось всегда.
type TxnTotals struct {
	Income  int64
	Expense int64
}

func ListTransactions(ctx context.Context, database *sql.DB, f TxnFilter) ([]models.Transaction, TxnTotals, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, amount, txn_type, txn_method, txn_date, info, contract_id, is_active, verified
FROM transactions
WHERE ($1 = '' OR txn_type = $1)
  AND ($2::timestamptz IS NULL OR txn_date < $2)
  AND ($3::timestamptz IS NULL OR txn_date > $3)
ORDER BY txn_date DESC, id DESC`, f.Type, f.DateBefore, f.DateAfter)
	if err != nil {
		return nil, TxnTotals{}, err
	}
	defer rows.Close()

	var result []models.Transaction
	var totals TxnTotals
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Type, &t.Method, &t.Date, &t.Info, &t.ContractID, &t.IsActive, &t.Verified); err != nil {
			return nil, TxnTotals{}, err
		}
		if t.Type.IsIncome() {
			totals.Income += t.Amount
		} else if t.Type.IsExpense() {
			totals.Expense += t.Amount
		}
		result = append(result, t)
	}
	return result, totals, rows.Err()
}

func GetTransactionByID(ctx context.Context, database *sql.DB, id int64) (*models.Transaction, error) {
	row := database.QueryRowContext(ctx, `
SELECT id, amount, txn_type, txn_method, txn_date, info, contract_id, is_active, verified
FROM transactions WHERE id = $1`, id)

	var t models.Transaction
	err := row.Scan(&t.ID, &t.Amount, &t.Type, &t.Method, &t.Date, &t.Info, &t.ContractID, &t.IsActive, &t.Verified)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

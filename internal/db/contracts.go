package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Spok95/school-backoffice/internal/models"
)

// CreateContract заключает договор с новым учеником: ученик, договор,
// приходная операция на первый платёж и запись в группу — одной
// транзакцией. req_payment должен быть уже посчитан (pricing.Calculate).
func CreateContract(ctx context.Context, database *sql.DB, student models.Student, con models.Contract, payment int64, method models.TxnMethod) (int64, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var studentID int64
	err = tx.QueryRowContext(ctx, `
INSERT INTO students (fname, lname, register, phone, birthday)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		student.FName, student.LName, student.Register, student.Phone, student.Birthday).Scan(&studentID)
	if err != nil {
		return 0, err
	}

	con.StudentID = studentID
	conID, err := insertContractTx(ctx, tx, con, payment, method)
	if err != nil {
		return 0, err
	}
	return conID, tx.Commit()
}

// CreateContractForStudent — договор для уже заведённого ученика.
// Второй договор на тот же поток не допускается.
func CreateContractForStudent(ctx context.Context, database *sql.DB, studentID int64, con models.Contract, payment int64, method models.TxnMethod) (int64, error) {
	var exists bool
	err := database.QueryRowContext(ctx, `
SELECT EXISTS (SELECT 1 FROM classes WHERE student_id = $1 AND course_id = $2)`,
		studentID, con.CourseID).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ValidationError("у этого ученика уже есть договор на этот курс")
	}

	if _, err := GetStudentByID(ctx, database, studentID); err != nil {
		return 0, err
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	con.StudentID = studentID
	conID, err := insertContractTx(ctx, tx, con, payment, method)
	if err != nil {
		return 0, err
	}
	return conID, tx.Commit()
}

func insertContractTx(ctx context.Context, tx *sql.Tx, con models.Contract, payment int64, method models.TxnMethod) (int64, error) {
	var conID int64
	err := tx.QueryRowContext(ctx, `
INSERT INTO contracts (student_id, course_id, date, minus_length, total_payment, req_payment, off_percent, contract_number, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`,
		con.StudentID, con.CourseID, con.Date, con.MinusLength, payment,
		con.ReqPayment, con.OffPercent, con.ContractNumber, con.Description).Scan(&conID)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO transactions (amount, txn_type, txn_method, txn_date, contract_id)
VALUES ($1, $2, $3, $4, $5)`,
		payment, models.TxnContractIncome, method, con.Date, conID)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO classes (student_id, course_id) VALUES ($1, $2)`, con.StudentID, con.CourseID)
	if err != nil {
		return 0, err
	}
	return conID, nil
}

// AddContractPayment — доплата по договору. Потолка нет: переплата
// принимается как есть, остаток просто уходит в минус.
func AddContractPayment(ctx context.Context, database *sql.DB, contractID, amount int64, method models.TxnMethod, date time.Time, info string) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
UPDATE contracts SET total_payment = total_payment + $1 WHERE id = $2`, amount, contractID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO transactions (amount, txn_type, txn_method, txn_date, info, contract_id)
VALUES ($1, $2, $3, $4, $5, $6)`,
		amount, models.TxnContractIncome, method, date, info, contractID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// ChangeContractCourse переводит договор на другой поток. Если перевод
// платный и старый поток уже начался — в леджер падает фиксированная
// плата за перевод. До старта занятий перевод бесплатен даже при
// NON_FREE.
func ChangeContractCourse(ctx context.Context, database *sql.DB, contractID, newCourseID int64, policy models.ClassChangePolicy, method models.TxnMethod, info string, fee int64, now time.Time) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var studentID, oldCourseID int64
	err = tx.QueryRowContext(ctx, `
SELECT student_id, course_id FROM contracts WHERE id = $1 FOR UPDATE`, contractID).
		Scan(&studentID, &oldCourseID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if oldCourseID == newCourseID {
		return ValidationError("этот курс уже указан в договоре")
	}

	var oldStart time.Time
	err = tx.QueryRowContext(ctx, `SELECT start_date FROM courses WHERE id = $1`, oldCourseID).Scan(&oldStart)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
UPDATE classes SET course_id = $1
WHERE id = (SELECT id FROM classes WHERE student_id = $2 AND course_id = $3 LIMIT 1)`,
		newCourseID, studentID, oldCourseID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE contracts SET course_id = $1 WHERE id = $2`, newCourseID, contractID)
	if err != nil {
		return err
	}

	if policy == models.ChangeNonFree && oldStart.Before(now) {
		_, err = tx.ExecContext(ctx, `
INSERT INTO transactions (amount, txn_type, txn_method, txn_date, info, contract_id)
VALUES ($1, $2, $3, $4, $5, $6)`,
			fee, models.TxnClassChangeIncome, method, now, info, contractID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeactivateContract гасит договор и убирает ученика из группы.
// Сам договор остаётся в истории.
func DeactivateContract(ctx context.Context, database *sql.DB, id int64) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var studentID, courseID int64
	err = tx.QueryRowContext(ctx, `
SELECT student_id, course_id FROM contracts WHERE id = $1 FOR UPDATE`, id).
		Scan(&studentID, &courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
DELETE FROM classes WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE contracts SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func GetContractByID(ctx context.Context, database *sql.DB, id int64) (*models.Contract, error) {
	row := database.QueryRowContext(ctx, `
SELECT con.id, con.student_id, con.course_id, con.date, con.minus_length,
       con.total_payment, con.req_payment, con.off_percent,
       con.contract_number, con.description, con.is_active,
       s.fname, ct.level
FROM contracts con
JOIN students s ON s.id = con.student_id
JOIN courses c ON c.id = con.course_id
JOIN course_types ct ON ct.id = c.ctype_id
WHERE con.id = $1`, id)

	var con models.Contract
	err := row.Scan(&con.ID, &con.StudentID, &con.CourseID, &con.Date, &con.MinusLength,
		&con.TotalPayment, &con.ReqPayment, &con.OffPercent,
		&con.ContractNumber, &con.Description, &con.IsActive,
		&con.StudentName, &con.CourseLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &con, nil
}

type ContractFilter struct {
	StudentName string
	CourseID    int64
	DateBefore  *time.Time
	DateAfter   *time.Time
	OnlyActive  bool
}

func ListContracts(ctx context.Context, database *sql.DB, f ContractFilter) ([]models.Contract, error) {
	rows, err := database.QueryContext(ctx, `
SELECT con.id, con.student_id, con.course_id, con.date, con.minus_length,
       con.total_payment, con.req_payment, con.off_percent,
       con.contract_number, con.description, con.is_active,
       s.fname, ct.level
FROM contracts con
JOIN students s ON s.id = con.student_id
JOIN courses c ON c.id = con.course_id
JOIN course_types ct ON ct.id = c.ctype_id
WHERE ($1 = '' OR s.fname ILIKE '%' || $1 || '%')
  AND ($2 = 0 OR con.course_id = $2)
  AND ($3::date IS NULL OR con.date < $3)
  AND ($4::date IS NULL OR con.date > $4)
  AND (NOT $5 OR con.is_active)
ORDER BY con.date DESC, con.id DESC`,
		f.StudentName, f.CourseID, f.DateBefore, f.DateAfter, f.OnlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Contract
	for rows.Next() {
		var con models.Contract
		if err := rows.Scan(&con.ID, &con.StudentID, &con.CourseID, &con.Date, &con.MinusLength,
			&con.TotalPayment, &con.ReqPayment, &con.OffPercent,
			&con.ContractNumber, &con.Description, &con.IsActive,
			&con.StudentName, &con.CourseLevel); err != nil {
			return nil, err
		}
		result = append(result, con)
	}
	return result, rows.Err()
}

// ListContractsByCourse — договоры потока (для карточки курса).
func ListContractsByCourse(ctx context.Context, database *sql.DB, courseID int64) ([]models.Contract, error) {
	return ListContracts(ctx, database, ContractFilter{CourseID: courseID})
}

// ListContractTransactions — операции по договору.
func ListContractTransactions(ctx context.Context, database *sql.DB, contractID int64) ([]models.Transaction, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, amount, txn_type, txn_method, txn_date, info, contract_id, is_active, verified
FROM transactions
WHERE contract_id = $1
ORDER BY txn_date DESC, id DESC`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Type, &t.Method, &t.Date, &t.Info, &t.ContractID, &t.IsActive, &t.Verified); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

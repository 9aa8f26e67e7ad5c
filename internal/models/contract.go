package models

import "time"

// Contract — договор на обучение. req_payment фиксируется в момент
// заключения (или перевода) и дальше не пересчитывается; total_payment
// только растёт за счёт платежей.
type Contract struct {
	ID             int64     `db:"id"`
	StudentID      int64     `db:"student_id"`
	CourseID       int64     `db:"course_id"`
	Date           time.Time `db:"date"`
	MinusLength    int       `db:"minus_length"`
	TotalPayment   int64     `db:"total_payment"`
	ReqPayment     int64     `db:"req_payment"`
	OffPercent     int       `db:"off_percent"`
	ContractNumber *string   `db:"contract_number"`
	Description    *string   `db:"description"`
	IsActive       bool      `db:"is_active"`

	StudentName string `db:"student_name"`
	CourseLevel string `db:"level"`
}

// RemainderPayment — остаток к оплате; после переплаты может быть
// отрицательным, это не ошибка.
func (c Contract) RemainderPayment() int64 {
	return c.ReqPayment - c.TotalPayment
}

// Transaction — строка леджера. После verified=true запись
// назад не возвращается; деактивация — отдельная одностороняя ось.
type Transaction struct {
	ID         int64      `db:"id"`
	Amount     int64      `db:"amount"`
	Type       TxnType    `db:"txn_type"`
	Method     *TxnMethod `db:"txn_method"`
	Date       time.Time  `db:"txn_date"`
	Info       string     `db:"info"`
	ContractID *int64     `db:"contract_id"`
	IsActive   bool       `db:"is_active"`
	Verified   bool       `db:"verified"`
}

// Package payroll готовит пакет начислений за период (год, месяц, смена):
// по каждому поданному человеку — строка зарплаты и расходная операция
// в леджер. Кто уже получил за этот период, пропускается молча.
package payroll

import (
	"time"

	"github.com/Spok95/school-backoffice/internal/models"
)

type TeacherEntry struct {
	Teacher models.Teacher
	Hours   int
}

type WorkerEntry struct {
	Worker models.Worker
	Wage   int64
}

// Batch — подготовленные к записи строки. Вставляются одной транзакцией,
// см. db.SaveSalaryBatch.
type Batch struct {
	Records []models.SalaryRecord
	Txns    []models.Transaction
}

// BuildTeacherBatch считает зарплату преподавателей: ставка × часы.
// alreadyPaid — id тех, у кого за (year, month, shift) уже есть строка.
func BuildTeacherBatch(year int, month models.Month, shift models.Shift, entries []TeacherEntry, alreadyPaid map[int64]bool, now time.Time) Batch {
	var b Batch
	for _, e := range entries {
		if e.Teacher.ID == 0 || e.Hours == 0 {
			continue
		}
		if alreadyPaid[e.Teacher.ID] {
			continue
		}
		salary := e.Teacher.HourlyWage * int64(e.Hours)
		tid := e.Teacher.ID
		b.Records = append(b.Records, models.SalaryRecord{
			TeacherID:  &tid,
			Salary:     salary,
			WorkedHour: e.Hours,
			Year:       year,
			Month:      month,
			Shift:      shift,
		})
		b.Txns = append(b.Txns, models.Transaction{
			Amount: salary,
			Type:   models.TxnSalaryExpense,
			Date:   now,
		})
	}
	return b
}

// BuildWorkerBatch — фиксированная сумма за период, часы не учитываются.
func BuildWorkerBatch(year int, month models.Month, shift models.Shift, entries []WorkerEntry, alreadyPaid map[int64]bool, now time.Time) Batch {
	var b Batch
	for _, e := range entries {
		if e.Worker.ID == 0 || e.Wage == 0 {
			continue
		}
		if alreadyPaid[e.Worker.ID] {
			continue
		}
		wid := e.Worker.ID
		b.Records = append(b.Records, models.SalaryRecord{
			WorkerID:   &wid,
			Salary:     e.Wage,
			WorkedHour: 1,
			Year:       year,
			Month:      month,
			Shift:      shift,
		})
		b.Txns = append(b.Txns, models.Transaction{
			Amount: e.Wage,
			Type:   models.TxnSalaryExpense,
			Date:   now,
		})
	}
	return b
}

// HasDuplicates — проверка «один человек выбран дважды» в одном пакете.
// Дубликаты отклоняются до расчёта, на уровне валидации запроса.
func HasDuplicates(ids []int64) bool {
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}

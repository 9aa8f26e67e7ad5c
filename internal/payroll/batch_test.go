package payroll

import (
	"testing"
	"time"

	"github.com/Spok95/school-backoffice/internal/models"
)

func TestBuildTeacherBatchSkipsPaid(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	entries := []TeacherEntry{
		{Teacher: models.Teacher{ID: 1, HourlyWage: 5000}, Hours: 10},
		{Teacher: models.Teacher{ID: 2, HourlyWage: 6000}, Hours: 10},
	}
	paid := map[int64]bool{1: true}

	b := BuildTeacherBatch(2026, models.February, models.FirstShift, entries, paid, now)

	if len(b.Records) != 1 || len(b.Txns) != 1 {
		t.Fatalf("records=%d txns=%d, ожидалось по одному", len(b.Records), len(b.Txns))
	}
	r := b.Records[0]
	if r.TeacherID == nil || *r.TeacherID != 2 {
		t.Fatalf("teacher_id = %v, ожидался 2", r.TeacherID)
	}
	if r.Salary != 60000 {
		t.Fatalf("salary = %d, ожидалось 60000", r.Salary)
	}
	if r.WorkedHour != 10 {
		t.Fatalf("worked_hour = %d, ожидалось 10", r.WorkedHour)
	}
	if b.Txns[0].Type != models.TxnSalaryExpense || b.Txns[0].Amount != 60000 {
		t.Fatalf("операция: %+v", b.Txns[0])
	}
}

func TestBuildTeacherBatchSkipsZeroHours(t *testing.T) {
	b := BuildTeacherBatch(2026, models.March, models.SecondShift, []TeacherEntry{
		{Teacher: models.Teacher{ID: 3, HourlyWage: 5000}, Hours: 0},
	}, nil, time.Now())
	if len(b.Records) != 0 {
		t.Fatalf("нулевые часы должны пропускаться: %+v", b.Records)
	}
}

func TestBuildWorkerBatch(t *testing.T) {
	now := time.Now()
	entries := []WorkerEntry{
		{Worker: models.Worker{ID: 7, MonthlyWage: 900000}, Wage: 900000},
		{Worker: models.Worker{ID: 8, MonthlyWage: 800000}, Wage: 800000},
	}
	b := BuildWorkerBatch(2026, models.January, models.FirstShift, entries, map[int64]bool{8: true}, now)

	if len(b.Records) != 1 {
		t.Fatalf("records=%d, ожидалась одна строка", len(b.Records))
	}
	r := b.Records[0]
	if r.WorkerID == nil || *r.WorkerID != 7 || r.TeacherID != nil {
		t.Fatalf("строка не про сотрудника 7: %+v", r)
	}
	if r.Salary != 900000 || r.WorkedHour != 1 {
		t.Fatalf("salary=%d worked_hour=%d", r.Salary, r.WorkedHour)
	}
}

func TestHasDuplicates(t *testing.T) {
	if HasDuplicates([]int64{1, 2, 3}) {
		t.Fatal("дубликатов нет")
	}
	if !HasDuplicates([]int64{1, 2, 1}) {
		t.Fatal("дубликат не замечен")
	}
	// нули — незаполненные строки формы, не дубликаты
	if HasDuplicates([]int64{0, 0, 5}) {
		t.Fatal("нули не должны считаться дубликатами")
	}
}

//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
	"github.com/Spok95/school-backoffice/internal/payroll"
	"github.com/Spok95/school-backoffice/internal/testutil/testdb"
)

func TestSalaryBatchSkipsAlreadyPaid(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	t1 := mustSeedTeacher(t, h.DB, "Ану", 5000)
	t2 := mustSeedTeacher(t, h.DB, "Бат", 6000)

	load := func(ids ...int64) []payroll.TeacherEntry {
		var entries []payroll.TeacherEntry
		for _, id := range ids {
			teacher, err := db.GetTeacherByID(ctx, h.DB, id)
			if err != nil {
				t.Fatal(err)
			}
			entries = append(entries, payroll.TeacherEntry{Teacher: *teacher, Hours: 10})
		}
		return entries
	}

	year, month, shift := 2026, models.February, models.FirstShift

	paid, err := db.PaidTeacherIDs(ctx, h.DB, year, month, shift)
	if err != nil {
		t.Fatal(err)
	}
	b := payroll.BuildTeacherBatch(year, month, shift, load(t1), paid, time.Now())
	if err := db.SaveSalaryBatch(ctx, h.DB, b); err != nil {
		t.Fatal(err)
	}

	// второй прогон за тот же период: t1 уже получил, пишется только t2
	paid, err = db.PaidTeacherIDs(ctx, h.DB, year, month, shift)
	if err != nil {
		t.Fatal(err)
	}
	if !paid[t1] {
		t.Fatal("t1 должен числиться оплаченным")
	}
	b = payroll.BuildTeacherBatch(year, month, shift, load(t1, t2), paid, time.Now())
	if len(b.Records) != 1 {
		t.Fatalf("records=%d, ожидалась одна строка (только t2)", len(b.Records))
	}
	if err := db.SaveSalaryBatch(ctx, h.DB, b); err != nil {
		t.Fatal(err)
	}

	list, err := db.ListSalaries(ctx, h.DB, db.SalaryFilter{Year: year, Month: string(month)})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("строк начислений: %d, ожидалось 2", len(list))
	}

	// другой период — те же люди получают снова
	paid, _ = db.PaidTeacherIDs(ctx, h.DB, year, models.March, shift)
	if len(paid) != 0 {
		t.Fatal("в марте ещё никто не получал")
	}
}

func TestSalaryBatchAtomicity(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	t1 := mustSeedTeacher(t, h.DB, "Цэцэг", 5000)
	t2 := mustSeedTeacher(t, h.DB, "Дорж", 6000)

	rec := func(id int64, salary int64) models.SalaryRecord {
		tid := id
		return models.SalaryRecord{
			TeacherID: &tid, Salary: salary, WorkedHour: 10,
			Year: 2026, Month: models.April, Shift: models.SecondShift,
		}
	}
	txn := func(amount int64) models.Transaction {
		return models.Transaction{Amount: amount, Type: models.TxnSalaryExpense, Date: time.Now()}
	}

	if err := db.SaveSalaryBatch(ctx, h.DB, payroll.Batch{
		Records: []models.SalaryRecord{rec(t1, 50000)},
		Txns:    []models.Transaction{txn(50000)},
	}); err != nil {
		t.Fatal(err)
	}

	// пакет с дублем по t1: падает целиком, t2 тоже не пишется
	err = db.SaveSalaryBatch(ctx, h.DB, payroll.Batch{
		Records: []models.SalaryRecord{rec(t2, 60000), rec(t1, 50000)},
		Txns:    []models.Transaction{txn(60000), txn(50000)},
	})
	if err == nil {
		t.Fatal("повторное начисление за период должно упираться в уникальный индекс")
	}

	list, err := db.ListSalaries(ctx, h.DB, db.SalaryFilter{Year: 2026, Month: string(models.April)})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("после отката должна остаться одна строка, есть %d", len(list))
	}

	// расходные операции тоже откатились
	_, totals, err := db.ListTransactions(ctx, h.DB, db.TxnFilter{Type: string(models.TxnSalaryExpense)})
	if err != nil {
		t.Fatal(err)
	}
	if totals.Expense != 50000 {
		t.Fatalf("расход = %d, ожидалось 50000", totals.Expense)
	}
}

func TestWorkerSalaryBatch(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	w1 := mustSeedWorker(t, h.DB, "Ганаа", 900000)

	worker, err := db.GetWorkerByID(ctx, h.DB, w1)
	if err != nil {
		t.Fatal(err)
	}

	b := payroll.BuildWorkerBatch(2026, models.January, models.FirstShift,
		[]payroll.WorkerEntry{{Worker: *worker, Wage: worker.MonthlyWage}}, nil, time.Now())
	if err := db.SaveSalaryBatch(ctx, h.DB, b); err != nil {
		t.Fatal(err)
	}

	paid, err := db.PaidWorkerIDs(ctx, h.DB, 2026, models.January, models.FirstShift)
	if err != nil {
		t.Fatal(err)
	}
	if !paid[w1] {
		t.Fatal("сотрудник должен числиться оплаченным")
	}

	list, err := db.ListSalaries(ctx, h.DB, db.SalaryFilter{Kind: "worker"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Salary != 900000 || list[0].WorkedHour != 1 {
		t.Fatalf("начисления сотрудникам: %+v", list)
	}
}

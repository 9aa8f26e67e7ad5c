//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
	"github.com/Spok95/school-backoffice/internal/testutil/testdb"
)

func TestContractLifecycle(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	courseID := mustSeedCourse(t, h.DB, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	number := "Д-001"
	conID, err := db.CreateContract(ctx, h.DB, models.Student{FName: "Сайхан", Phone: "99000001"},
		models.Contract{
			CourseID:       courseID,
			Date:           time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			ReqPayment:     80000,
			OffPercent:     20,
			ContractNumber: &number,
		}, 30000, models.ByBank)
	if err != nil {
		t.Fatal(err)
	}

	con, err := db.GetContractByID(ctx, h.DB, conID)
	if err != nil {
		t.Fatal(err)
	}
	if con.TotalPayment != 30000 || con.ReqPayment != 80000 {
		t.Fatalf("total=%d req=%d", con.TotalPayment, con.ReqPayment)
	}
	if con.RemainderPayment() != 50000 {
		t.Fatalf("остаток = %d, ожидалось 50000", con.RemainderPayment())
	}
	if countClassRows(t, h.DB, con.StudentID, courseID) != 1 {
		t.Fatal("ученик не записан в группу")
	}

	// первый платёж лёг в леджер оплатой по договору
	txns, err := db.ListContractTransactions(ctx, h.DB, conID)
	if err != nil {
		t.Fatal(err)
	}
	if len(txns) != 1 || txns[0].Type != models.TxnContractIncome || txns[0].Amount != 30000 {
		t.Fatalf("операции по договору: %+v", txns)
	}

	// доплата
	if err := db.AddContractPayment(ctx, h.DB, conID, 60000, models.ByCash,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), "доплата"); err != nil {
		t.Fatal(err)
	}
	con, _ = db.GetContractByID(ctx, h.DB, conID)
	if con.TotalPayment != 90000 {
		t.Fatalf("total после доплаты = %d", con.TotalPayment)
	}
	// переплата: остаток уходит в минус, это допустимо
	if con.RemainderPayment() != -10000 {
		t.Fatalf("остаток = %d, ожидалось -10000", con.RemainderPayment())
	}

	// расторжение: договор гаснет, из группы ученик убирается
	if err := db.DeactivateContract(ctx, h.DB, conID); err != nil {
		t.Fatal(err)
	}
	con, _ = db.GetContractByID(ctx, h.DB, conID)
	if con.IsActive {
		t.Fatal("договор должен быть погашен")
	}
	if countClassRows(t, h.DB, con.StudentID, courseID) != 0 {
		t.Fatal("запись в группу должна быть удалена")
	}
}

func TestCreateContractForStudentRejectsDuplicate(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	courseID := mustSeedCourse(t, h.DB, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	studentID := mustSeedStudent(t, h.DB, "Болд")

	con := models.Contract{CourseID: courseID, Date: time.Now(), ReqPayment: 100000}
	if _, err := db.CreateContractForStudent(ctx, h.DB, studentID, con, 0, models.ByCash); err != nil {
		t.Fatal(err)
	}

	_, err = db.CreateContractForStudent(ctx, h.DB, studentID, con, 0, models.ByCash)
	if !db.IsValidation(err) {
		t.Fatalf("второй договор на тот же поток должен отклоняться, получили: %v", err)
	}
}

func TestChangeContractCourseFee(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	now := time.Now()
	startedCourse := mustSeedCourse(t, h.DB, now.AddDate(0, 0, -7))
	newCourse := mustSeedCourse(t, h.DB, now.AddDate(0, 0, 7))
	studentID := mustSeedStudent(t, h.DB, "Оюун")

	conID, err := db.CreateContractForStudent(ctx, h.DB, studentID,
		models.Contract{CourseID: startedCourse, Date: now, ReqPayment: 100000}, 0, models.ByCash)
	if err != nil {
		t.Fatal(err)
	}

	// перевод на тот же поток — ошибка валидации
	err = db.ChangeContractCourse(ctx, h.DB, conID, startedCourse,
		models.ChangeNonFree, models.ByCash, "", 88000, now)
	if !db.IsValidation(err) {
		t.Fatalf("перевод на тот же поток: %v", err)
	}

	// платный перевод со стартовавшего потока — плата за перевод
	err = db.ChangeContractCourse(ctx, h.DB, conID, newCourse,
		models.ChangeNonFree, models.ByCash, "перевод", 88000, now)
	if err != nil {
		t.Fatal(err)
	}

	con, _ := db.GetContractByID(ctx, h.DB, conID)
	if con.CourseID != newCourse {
		t.Fatalf("course_id = %d, ожидался %d", con.CourseID, newCourse)
	}
	if countClassRows(t, h.DB, studentID, newCourse) != 1 || countClassRows(t, h.DB, studentID, startedCourse) != 0 {
		t.Fatal("запись в группу не переехала")
	}

	txns, _ := db.ListContractTransactions(ctx, h.DB, conID)
	var fees int
	for _, txn := range txns {
		if txn.Type == models.TxnClassChangeIncome {
			fees++
			if txn.Amount != 88000 {
				t.Fatalf("плата за перевод = %d", txn.Amount)
			}
		}
	}
	if fees != 1 {
		t.Fatalf("плат за перевод: %d, ожидалась одна", fees)
	}
}

func TestChangeContractCourseFreeBeforeStart(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	now := time.Now()
	// старый поток ещё не начался: перевод бесплатен даже при NON_FREE
	futureCourse := mustSeedCourse(t, h.DB, now.AddDate(0, 0, 10))
	otherCourse := mustSeedCourse(t, h.DB, now.AddDate(0, 0, 20))
	studentID := mustSeedStudent(t, h.DB, "Тэмүүлэн")

	conID, err := db.CreateContractForStudent(ctx, h.DB, studentID,
		models.Contract{CourseID: futureCourse, Date: now, ReqPayment: 100000}, 0, models.ByCash)
	if err != nil {
		t.Fatal(err)
	}

	err = db.ChangeContractCourse(ctx, h.DB, conID, otherCourse,
		models.ChangeNonFree, models.ByCash, "", 88000, now)
	if err != nil {
		t.Fatal(err)
	}

	txns, _ := db.ListContractTransactions(ctx, h.DB, conID)
	for _, txn := range txns {
		if txn.Type == models.TxnClassChangeIncome {
			t.Fatal("до старта занятий платы за перевод быть не должно")
		}
	}
}

func TestVerifyTransactionOneWay(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	id, err := db.CreateTransaction(ctx, h.DB, models.Transaction{
		Amount: 5000, Type: models.TxnExpense, Date: time.Now(), Info: "канцелярия",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.VerifyTransaction(ctx, h.DB, id); err != nil {
		t.Fatal(err)
	}
	// повторная отметка ничего не ломает
	if err := db.VerifyTransaction(ctx, h.DB, id); err != nil {
		t.Fatal(err)
	}

	txn, err := db.GetTransactionByID(ctx, h.DB, id)
	if err != nil {
		t.Fatal(err)
	}
	if !txn.Verified {
		t.Fatal("операция должна остаться проверенной")
	}
}

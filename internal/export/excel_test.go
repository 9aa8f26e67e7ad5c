package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
)

func TestSalaryWorkbook(t *testing.T) {
	tid := int64(1)
	data, err := WorkbookBytes([]SheetSpec{SalarySheet([]models.SalaryRecord{
		{TeacherID: &tid, Salary: 60000, WorkedHour: 10, Year: 2026, Month: models.February, Shift: models.FirstShift, PersonName: "Бат"},
	})})
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Зарплаты")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("строк: %d, ожидалось 2 (шапка + данные)", len(rows))
	}
	if rows[1][0] != "Бат" || rows[1][2] != "60000" {
		t.Fatalf("строка данных: %v", rows[1])
	}
}

func TestTransactionWorkbookTotals(t *testing.T) {
	method := models.ByCash
	txns := []models.Transaction{
		{Amount: 30000, Type: models.TxnContractIncome, Method: &method, Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Verified: true},
		{Amount: 5000, Type: models.TxnExpense, Date: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
	}
	data, err := WorkbookBytes([]SheetSpec{TransactionSheet(txns, db.TxnTotals{Income: 30000, Expense: 5000})})
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Операции")
	if err != nil {
		t.Fatal(err)
	}
	// шапка + 2 операции + 2 итоговые строки
	if len(rows) != 5 {
		t.Fatalf("строк: %d, ожидалось 5", len(rows))
	}
	last := rows[len(rows)-1]
	if last[1] != "Итого расход" || last[2] != "5000" {
		t.Fatalf("итоговая строка: %v", last)
	}
}

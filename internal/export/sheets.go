package export

import (
	"strconv"

	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
)

// SalarySheet — лист начислений: кому, сколько, за какой период.
func SalarySheet(records []models.SalaryRecord) SheetSpec {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		kind := "преподаватель"
		if r.WorkerID != nil {
			kind = "сотрудник"
		}
		rows = append(rows, []string{
			r.PersonName,
			kind,
			strconv.FormatInt(r.Salary, 10),
			strconv.Itoa(r.WorkedHour),
			strconv.Itoa(r.Year),
			r.Month.Label(),
			r.Shift.Label(),
		})
	}
	return SheetSpec{
		Title:  "Зарплаты",
		Header: []string{"Имя", "Роль", "Сумма", "Часы", "Год", "Месяц", "Смена"},
		Rows:   rows,
	}
}

// TransactionSheet — леджер с итоговой строкой прихода и расхода.
func TransactionSheet(txns []models.Transaction, totals db.TxnTotals) SheetSpec {
	rows := make([][]string, 0, len(txns)+2)
	for _, t := range txns {
		method := ""
		if t.Method != nil {
			method = t.Method.Label()
		}
		verified := ""
		if t.Verified {
			verified = "да"
		}
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			t.Type.Label(),
			strconv.FormatInt(t.Amount, 10),
			method,
			t.Info,
			verified,
		})
	}
	rows = append(rows,
		[]string{"", "Итого приход", strconv.FormatInt(totals.Income, 10), "", "", ""},
		[]string{"", "Итого расход", strconv.FormatInt(totals.Expense, 10), "", "", ""},
	)
	return SheetSpec{
		Title:  "Операции",
		Header: []string{"Дата", "Тип", "Сумма", "Способ", "Примечание", "Проверена"},
		Rows:   rows,
	}
}

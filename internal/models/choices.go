package models

import "strings"

// Коды значений хранятся в БД как есть — менять их нельзя,
// по ним считаются отчёты по историческим данным.

type TxnType string

const (
	TxnIncome            TxnType = "INCOME"
	TxnExpense           TxnType = "EXPENSE"
	TxnContractIncome    TxnType = "CINCOME"
	TxnClassChangeIncome TxnType = "CHANINCOME"
	TxnSalaryExpense     TxnType = "SEXPENSE"
)

func (t TxnType) Label() string {
	switch t {
	case TxnIncome:
		return "Прочий доход"
	case TxnExpense:
		return "Прочий расход"
	case TxnContractIncome:
		return "Оплата по договору"
	case TxnClassChangeIncome:
		return "Плата за перевод"
	case TxnSalaryExpense:
		return "Выплата зарплаты"
	}
	return string(t)
}

func (t TxnType) IsIncome() bool  { return strings.HasSuffix(string(t), "INCOME") }
func (t TxnType) IsExpense() bool { return strings.HasSuffix(string(t), "EXPENSE") }

// ValidTxnType — полный перечень типов операций леджера.
func ValidTxnType(s string) bool {
	switch TxnType(s) {
	case TxnIncome, TxnExpense, TxnContractIncome, TxnClassChangeIncome, TxnSalaryExpense:
		return true
	}
	return false
}

type TxnMethod string

const (
	ByBank TxnMethod = "BY_BANK"
	ByCash TxnMethod = "BY_CASH"
)

func (m TxnMethod) Label() string {
	switch m {
	case ByBank:
		return "Безналичный"
	case ByCash:
		return "Наличный"
	}
	return string(m)
}

type Month string

const (
	January   Month = "JANUARY"
	February  Month = "FEBRUARY"
	March     Month = "MARCH"
	April     Month = "APRIL"
	May       Month = "MAY"
	June      Month = "JUNE"
	July      Month = "JULY"
	August    Month = "AUGUST"
	September Month = "SEPTEMBER"
	October   Month = "OCTOBER"
	November  Month = "NOVEMBER"
	December  Month = "DECEMBER"
)

var monthOrder = []Month{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

var monthLabels = map[Month]string{
	January: "Январь", February: "Февраль", March: "Март",
	April: "Апрель", May: "Май", June: "Июнь",
	July: "Июль", August: "Август", September: "Сентябрь",
	October: "Октябрь", November: "Ноябрь", December: "Декабрь",
}

func (m Month) Label() string {
	if l, ok := monthLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m Month) Number() int {
	for i, x := range monthOrder {
		if x == m {
			return i + 1
		}
	}
	return 0
}

func ValidMonth(s string) bool { return Month(s).Number() != 0 }

type Shift string

const (
	FirstShift  Shift = "FIRST"
	SecondShift Shift = "SECOND"
)

func (s Shift) Label() string {
	switch s {
	case FirstShift:
		return "1-я смена"
	case SecondShift:
		return "2-я смена"
	}
	return string(s)
}

type Level string

const (
	Beginner    Level = "BEGINNER"
	BelowMiddle Level = "BMID"
	Middle      Level = "MID"
	AboveMiddle Level = "AMID"
	Advanced    Level = "ADVANCED"
)

func (l Level) Label() string {
	switch l {
	case Beginner:
		return "Начальный"
	case BelowMiddle:
		return "Ниже среднего"
	case Middle:
		return "Средний"
	case AboveMiddle:
		return "Выше среднего"
	case Advanced:
		return "Продвинутый"
	}
	return string(l)
}

func ValidLevel(s string) bool {
	switch Level(s) {
	case Beginner, BelowMiddle, Middle, AboveMiddle, Advanced:
		return true
	}
	return false
}

// ClassChangePolicy — платный или бесплатный перевод в другую группу.
type ClassChangePolicy string

const (
	ChangeFree    ClassChangePolicy = "FREE"
	ChangeNonFree ClassChangePolicy = "NON_FREE"
)

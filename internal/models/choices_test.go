package models

import "testing"

func TestTxnTypeDirection(t *testing.T) {
	incomes := []TxnType{TxnIncome, TxnContractIncome, TxnClassChangeIncome}
	for _, typ := range incomes {
		if !typ.IsIncome() || typ.IsExpense() {
			t.Fatalf("%s должен быть доходом", typ)
		}
	}
	expenses := []TxnType{TxnExpense, TxnSalaryExpense}
	for _, typ := range expenses {
		if !typ.IsExpense() || typ.IsIncome() {
			t.Fatalf("%s должен быть расходом", typ)
		}
	}
}

func TestMonthNumber(t *testing.T) {
	if January.Number() != 1 || December.Number() != 12 {
		t.Fatalf("порядок месяцев сломан: %d %d", January.Number(), December.Number())
	}
	if Month("SMARCH").Number() != 0 {
		t.Fatal("неизвестный месяц должен давать 0")
	}
	if ValidMonth("JANUARY") != true || ValidMonth("январь") != false {
		t.Fatal("валидация месяца")
	}
}

func TestShortName(t *testing.T) {
	ln := "Болд"
	s := Student{FName: "Сайхан", LName: &ln}
	if s.ShortName() != "Б.Сайхан" {
		t.Fatalf("short = %q", s.ShortName())
	}
	s.LName = nil
	if s.ShortName() != "Сайхан" {
		t.Fatalf("без фамилии short = %q", s.ShortName())
	}
}

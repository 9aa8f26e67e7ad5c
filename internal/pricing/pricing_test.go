package pricing

import "testing"

func TestCalculateDiscount(t *testing.T) {
	q := Calculate(100000, 10000, 10, 0, 20)
	if q.DiscountedPrice != 80000 {
		t.Fatalf("discounted = %d, ожидалось 80000", q.DiscountedPrice)
	}
	if q.EffectiveHourly != 8000 {
		t.Fatalf("hourly = %d, ожидалось 8000", q.EffectiveHourly)
	}
	if q.ReqPayment != 80000 {
		t.Fatalf("req = %d, ожидалось 80000", q.ReqPayment)
	}
}

func TestCalculateMinusLength(t *testing.T) {
	// снято 4 часа из 10: платим по часовой ставке за оставшиеся 6
	q := Calculate(100000, 10000, 10, 4, 20)
	if q.ReqPayment != 48000 {
		t.Fatalf("req = %d, ожидалось 48000", q.ReqPayment)
	}
}

func TestCalculateNoDiscount(t *testing.T) {
	q := Calculate(100000, 10000, 10, 0, 0)
	if q.DiscountedPrice != 100000 || q.ReqPayment != 100000 {
		t.Fatalf("без скидки цена меняться не должна: %+v", q)
	}
}

func TestCalculateOffPercentOutOfRange(t *testing.T) {
	// 150 и -5 процентов исторически трактуются как «без скидки»
	for _, off := range []int{150, -5, 101} {
		q := Calculate(100000, 10000, 10, 2, off)
		if q.DiscountedPrice != 100000 {
			t.Fatalf("off=%d: discounted = %d, ожидалось 100000", off, q.DiscountedPrice)
		}
		if q.ReqPayment != 80000 {
			t.Fatalf("off=%d: req = %d, ожидалось 80000", off, q.ReqPayment)
		}
	}
}

func TestCalculateFullDiscount(t *testing.T) {
	q := Calculate(100000, 10000, 10, 0, 100)
	if q.DiscountedPrice != 0 || q.ReqPayment != 0 {
		t.Fatalf("скидка 100%%: %+v", q)
	}
}

func TestCalculateDiscountTruncates(t *testing.T) {
	// 1001 со скидкой 25: 750.75 — дробная часть отбрасывается,
	// не округляется вверх
	q := Calculate(1001, 100, 10, 0, 25)
	if q.DiscountedPrice != 750 {
		t.Fatalf("discounted = %d, ожидалось 750", q.DiscountedPrice)
	}
	if q.ReqPayment != 750 {
		t.Fatalf("req = %d, ожидалось 750", q.ReqPayment)
	}
	// часовая ставка при этом округляется к чётному
	if q.EffectiveHourly != 75 {
		t.Fatalf("hourly = %d, ожидалось 75", q.EffectiveHourly)
	}
}

func TestCalculateBankersRounding(t *testing.T) {
	// 95000/12 = 7916.6(6) → 7917; проверяем и случай ровно .5
	q := Calculate(100000, 8334, 12, 0, 5)
	if q.DiscountedPrice != 95000 {
		t.Fatalf("discounted = %d, ожидалось 95000", q.DiscountedPrice)
	}
	if q.EffectiveHourly != 7917 {
		t.Fatalf("hourly = %d, ожидалось 7917", q.EffectiveHourly)
	}

	// 75/10 при скидке 25 от 100: 7.5 округляется к чётному → 8
	q = Calculate(100, 10, 10, 1, 25)
	if q.EffectiveHourly != 8 {
		t.Fatalf("hourly = %d, ожидалось 8 (к чётному)", q.EffectiveHourly)
	}
	if q.ReqPayment != 72 {
		t.Fatalf("req = %d, ожидалось 72", q.ReqPayment)
	}
}

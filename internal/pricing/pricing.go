// Package pricing считает стоимость договора: скидка в процентах от
// цены курса и перерасчёт по часам, если часть часов снята.
package pricing

import "math"

// Quote — итог расчёта по договору.
type Quote struct {
	// DiscountedPrice — цена курса после скидки (без учёта снятых часов).
	DiscountedPrice int64
	// EffectiveHourly — почасовая ставка, по которой считается оплата
	// при снятых часах.
	EffectiveHourly int64
	// ReqPayment — сумма к оплате по договору.
	ReqPayment int64
}

// Calculate применяет правило ценообразования.
//
// offPercent вне (0,100] означает «без скидки» — значение молча
// игнорируется, не отклоняется. Так заведено исторически: по этим же
// формулам посчитаны суммы в старых договорах, менять нельзя.
// Часовая ставка округляется банковски (к чётному), а цена после
// скидки записывается с отброшенной дробной частью — именно в таком
// виде лежат суммы в исторических договорах.
func Calculate(price, hourlyPrice int64, length, minusLength, offPercent int) Quote {
	discounted := float64(price)
	hourly := float64(hourlyPrice)

	if offPercent > 0 && offPercent <= 100 {
		off := float64(price) * float64(offPercent) / 100
		discounted = float64(price) - off
		hourly = math.RoundToEven(discounted / float64(length))
	}

	q := Quote{
		DiscountedPrice: int64(discounted),
		EffectiveHourly: int64(hourly),
	}

	if minusLength == 0 {
		q.ReqPayment = q.DiscountedPrice
	} else {
		realLength := int64(length - minusLength)
		q.ReqPayment = q.EffectiveHourly * realLength
	}
	return q
}

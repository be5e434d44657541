package pricing

import "errors"

// VAT is included in the net pay at a fixed 12% and backed out for the
// receipt breakdown, never added on top.
const VATDivisor = 1.12

var (
	ErrEmptyCart        = errors.New("cart must contain at least one line")
	ErrInvalidLine      = errors.New("cart line quantity must be positive and price non-negative")
	ErrInvalidDiscount  = errors.New("discount percent must be between 0 and 100")
	ErrInsufficientCash = errors.New("cash given is less than the amount due")
)

type DiscountType string

const (
	DiscountNone    DiscountType = "none"
	DiscountSenior  DiscountType = "senior"
	DiscountPWD     DiscountType = "pwd"
	DiscountStudent DiscountType = "student"
	DiscountCustom  DiscountType = "custom"
)

var discountTable = map[DiscountType]float64{
	DiscountNone:    0,
	DiscountSenior:  20,
	DiscountPWD:     20,
	DiscountStudent: 10,
}

// Line is one cart entry as priced at the register.
type Line struct {
	Quantity int
	Price    float64
}

// Breakdown carries every aggregate a receipt stores.
type Breakdown struct {
	Subtotal        float64
	DiscountPercent float64
	DiscountAmount  float64
	NetPay          float64
	VatableSale     float64
	VatAmount       float64
}

// Percent resolves a discount type to its percentage. Custom discounts use
// the caller-supplied percent; the fixed types ignore it.
func Percent(dt DiscountType, customPercent float64) (float64, error) {
	if dt == DiscountCustom {
		if customPercent < 0 || customPercent > 100 {
			return 0, ErrInvalidDiscount
		}
		return customPercent, nil
	}
	pct, ok := discountTable[dt]
	if !ok {
		return 0, ErrInvalidDiscount
	}
	return pct, nil
}

// Compute derives the full receipt breakdown from cart lines and a
// discount selection.
func Compute(lines []Line, dt DiscountType, customPercent float64) (Breakdown, error) {
	if len(lines) == 0 {
		return Breakdown{}, ErrEmptyCart
	}

	pct, err := Percent(dt, customPercent)
	if err != nil {
		return Breakdown{}, err
	}

	var subtotal float64
	for _, line := range lines {
		if line.Quantity <= 0 || line.Price < 0 {
			return Breakdown{}, ErrInvalidLine
		}
		subtotal += float64(line.Quantity) * line.Price
	}

	discountAmount := subtotal * pct / 100
	netPay := subtotal - discountAmount
	vatableSale := netPay / VATDivisor

	return Breakdown{
		Subtotal:        subtotal,
		DiscountPercent: pct,
		DiscountAmount:  discountAmount,
		NetPay:          netPay,
		VatableSale:     vatableSale,
		VatAmount:       netPay - vatableSale,
	}, nil
}

// Change returns cash minus net pay, refusing finalization when the cash
// tendered does not cover the amount due.
func Change(cashGiven, netPay float64) (float64, error) {
	if cashGiven < netPay {
		return 0, ErrInsufficientCash
	}
	return cashGiven - netPay, nil
}

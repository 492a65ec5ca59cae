package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// SplitEvenly divides a billing amount into n equal shares, each rounded
// down to cents. The remainder left by rounding is absorbed by the property
// side, so the sum of shares never exceeds the total and falls short by at
// most (n-1) cents.
func SplitEvenly(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cannot split between zero tenants")
	}
	if total.IsNegative() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "billing amount cannot be negative")
	}

	share := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = share
	}
	return shares, nil
}

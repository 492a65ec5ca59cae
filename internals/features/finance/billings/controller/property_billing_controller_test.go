package controller

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlekkerman/roomie/internals/features/finance/billings/model"
	propertyModel "github.com/nlekkerman/roomie/internals/features/properties/property/model"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func testProperty(rent string) *propertyModel.PropertyModel {
	p := &propertyModel.PropertyModel{}
	if rent != "" {
		d, _ := decimal.NewFromString(rent)
		p.PropertyRentAmount = decimal.NewNullDecimal(d)
	}
	return p
}

func TestResolveBillingAmountDefaultsRentFromProperty(t *testing.T) {
	billing := &model.PropertyBillingModel{
		PropertyBillingCategory: model.CategoryRent,
		PropertyBillingDate:     time.Now().UTC(),
	}

	require.NoError(t, resolveBillingAmount(billing, testProperty("1200.00")))
	assert.True(t, billing.PropertyBillingAmount.Equal(mustDecimal(t, "1200.00")))
}

func TestResolveBillingAmountKeepsExplicitRentAmount(t *testing.T) {
	billing := &model.PropertyBillingModel{
		PropertyBillingCategory: model.CategoryRent,
		PropertyBillingAmount:   mustDecimal(t, "950.00"),
	}

	require.NoError(t, resolveBillingAmount(billing, testProperty("1200.00")))
	assert.True(t, billing.PropertyBillingAmount.Equal(mustDecimal(t, "950.00")))
}

func TestResolveBillingAmountRejectsRentWithoutPropertyRent(t *testing.T) {
	billing := &model.PropertyBillingModel{
		PropertyBillingCategory: model.CategoryRent,
	}

	err := resolveBillingAmount(billing, testProperty(""))
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestResolveBillingAmountRequiresAmountForOtherCategories(t *testing.T) {
	billing := &model.PropertyBillingModel{
		PropertyBillingCategory: model.CategoryElectricity,
	}

	err := resolveBillingAmount(billing, testProperty("1200.00"))
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestResolveBillingAmountRejectsUnknownCategory(t *testing.T) {
	billing := &model.PropertyBillingModel{
		PropertyBillingCategory: "parking",
		PropertyBillingAmount:   mustDecimal(t, "50.00"),
	}

	err := resolveBillingAmount(billing, testProperty(""))
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

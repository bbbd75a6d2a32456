package ordering

import (
	"testing"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dish(id uuid.UUID, price string, customizations ...model.Customization) model.DishWithCustomizations {
	return model.DishWithCustomizations{
		Dish:           model.Dish{ID: id, Name: "dish", Price: decimal.RequireFromString(price), Stock: 10},
		Customizations: customizations,
	}
}

func customization(id uuid.UUID, price string) model.Customization {
	return model.Customization{ID: id, Price: decimal.RequireFromString(price)}
}

func TestPriceCart_ExampleScenario(t *testing.T) {
	d1, c1 := uuid.New(), uuid.New()
	dishes := []model.DishWithCustomizations{dish(d1, "10.00", customization(c1, "2.00"))}
	cart := []model.CartLine{{
		DishID:         d1.String(),
		Quantity:       2,
		Customizations: []model.CartCustomization{{CustomizationID: c1.String(), Quantity: 1}},
	}}

	lines, total, err := PriceCart(cart, dishes)

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("22.00")), "got %s", total)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	require.Len(t, lines[0].Customizations, 1)
	assert.True(t, lines[0].Customizations[0].UnitPrice.Equal(decimal.RequireFromString("2.00")))
}

func TestPriceCart_MultiLineMultiCustomization(t *testing.T) {
	d1, d2 := uuid.New(), uuid.New()
	c1, c2, c3 := uuid.New(), uuid.New(), uuid.New()
	dishes := []model.DishWithCustomizations{
		dish(d1, "12.90", customization(c1, "1.10"), customization(c2, "0.35")),
		dish(d2, "7.45", customization(c3, "3.30")),
	}
	cart := []model.CartLine{
		{
			DishID:   d1.String(),
			Quantity: 3,
			Customizations: []model.CartCustomization{
				{CustomizationID: c1.String(), Quantity: 2},
				{CustomizationID: c2.String(), Quantity: 3},
			},
		},
		{
			DishID:         d2.String(),
			Quantity:       1,
			Customizations: []model.CartCustomization{{CustomizationID: c3.String(), Quantity: 1}},
		},
		{DishID: d1.String(), Quantity: 1},
	}

	lines, total, err := PriceCart(cart, dishes)
	require.NoError(t, err)

	// 12.90*3 + 1.10*2 + 0.35*3 = 41.95 ; 7.45 + 3.30 = 10.75 ; 12.90
	expected := decimal.RequireFromString("65.60")
	assert.True(t, total.Equal(expected), "got %s", total)

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal)
	}
	assert.True(t, sum.Equal(total))

	demand := StockDemand(lines)
	assert.Equal(t, 4, demand[d1])
	assert.Equal(t, 1, demand[d2])
}

func TestPriceCart_Errors(t *testing.T) {
	d1, c1, foreign := uuid.New(), uuid.New(), uuid.New()
	dishes := []model.DishWithCustomizations{dish(d1, "5.00", customization(c1, "1.00"))}

	tests := []struct {
		name        string
		cart        []model.CartLine
		expectedErr error
		validation  string
	}{
		{
			name:        "Unknown dish",
			cart:        []model.CartLine{{DishID: d1.String(), Quantity: 1}, {DishID: uuid.NewString(), Quantity: 1}},
			expectedErr: model.ErrDishesNotFound,
		},
		{
			name: "Customization of another dish",
			cart: []model.CartLine{{
				DishID:         d1.String(),
				Quantity:       1,
				Customizations: []model.CartCustomization{{CustomizationID: foreign.String(), Quantity: 1}},
			}},
			expectedErr: model.ErrCustomizationNotFound(foreign.String()),
		},
		{
			name:       "Malformed dish id",
			cart:       []model.CartLine{{DishID: "nope", Quantity: 1}},
			validation: "dishes[0].dishId",
		},
		{
			name:       "Zero quantity",
			cart:       []model.CartLine{{DishID: d1.String(), Quantity: 0}},
			validation: "dishes[0].quantity",
		},
		{
			name: "Zero customization quantity",
			cart: []model.CartLine{{
				DishID:         d1.String(),
				Quantity:       1,
				Customizations: []model.CartCustomization{{CustomizationID: c1.String(), Quantity: 0}},
			}},
			validation: "dishes[0].customizations[0].quantity",
		},
		{
			name:       "Quantity past INTEGER",
			cart:       []model.CartLine{{DishID: d1.String(), Quantity: 3000000000}},
			validation: "dishes[0].quantity",
		},
		{
			name: "Customization quantity past the line limit",
			cart: []model.CartLine{{
				DishID:         d1.String(),
				Quantity:       1,
				Customizations: []model.CartCustomization{{CustomizationID: c1.String(), Quantity: model.MaxLineQuantity + 1}},
			}},
			validation: "dishes[0].customizations[0].quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, total, err := PriceCart(tt.cart, dishes)

			require.Error(t, err)
			assert.Nil(t, lines)
			assert.True(t, total.IsZero())

			if tt.validation != "" {
				var verr *model.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.validation)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
			de, ok := model.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, model.KindNotFound, de.Kind)
		})
	}
}

func TestDishIDs_Distinct(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids, err := DishIDs([]model.CartLine{
		{DishID: a.String()}, {DishID: b.String()}, {DishID: a.String()},
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}

func TestFormatOrderNumber(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{1, "0001"},
		{42, "0042"},
		{9999, "9999"},
		{10000, "10000"},
		{123456, "123456"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatOrderNumber(tt.n))
	}
}

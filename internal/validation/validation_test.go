package validation

import (
	"testing"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_PlaceOrderRequest(t *testing.T) {
	tests := []struct {
		name           string
		req            model.PlaceOrderRequest
		expectedFields []string
	}{
		{
			name: "Valid",
			req: model.PlaceOrderRequest{
				TableID: uuid.NewString(),
				Dishes: []model.CartLine{{
					DishID:         uuid.NewString(),
					Quantity:       1,
					Customizations: []model.CartCustomization{{CustomizationID: uuid.NewString(), Quantity: 1}},
				}},
			},
		},
		{
			name:           "Missing everything",
			req:            model.PlaceOrderRequest{},
			expectedFields: []string{"tableId", "dishes"},
		},
		{
			name: "Nested violations",
			req: model.PlaceOrderRequest{
				TableID: "not-a-uuid",
				Dishes: []model.CartLine{{
					DishID:         uuid.NewString(),
					Quantity:       0,
					Customizations: []model.CartCustomization{{CustomizationID: "x", Quantity: 1}},
				}},
			},
			expectedFields: []string{"tableId", "dishes[0].quantity", "dishes[0].customizations[0].customizationId"},
		},
		{
			name: "Quantities past the line limit",
			req: model.PlaceOrderRequest{
				TableID: uuid.NewString(),
				Dishes: []model.CartLine{{
					DishID:         uuid.NewString(),
					Quantity:       3000000000,
					Customizations: []model.CartCustomization{{CustomizationID: uuid.NewString(), Quantity: model.MaxLineQuantity + 1}},
				}},
			},
			expectedFields: []string{"dishes[0].quantity", "dishes[0].customizations[0].quantity"},
		},
		{
			name: "Quantity at the line limit",
			req: model.PlaceOrderRequest{
				TableID: uuid.NewString(),
				Dishes:  []model.CartLine{{DishID: uuid.NewString(), Quantity: model.MaxLineQuantity}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.req)

			if len(tt.expectedFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.expectedFields {
				assert.Contains(t, verr.Fields, f)
			}
			assert.Len(t, verr.Fields, len(tt.expectedFields))
		})
	}
}

func TestStruct_DecimalPrice(t *testing.T) {
	err := Struct(&model.CreateCustomizationRequest{Name: "Bacon", Price: decimal.RequireFromString("2.50")})
	assert.NoError(t, err)

	err = Struct(&model.CreateCustomizationRequest{Name: "Bacon", Price: decimal.Zero})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"must be greater than 0"}, verr.Fields["price"])
}

func TestStruct_CreateDishRequest(t *testing.T) {
	valid := func() model.CreateDishRequest {
		return model.CreateDishRequest{
			Name:        "Pudim",
			Description: "Condensed milk flan",
			Category:    model.CategoryDessert,
			Price:       decimal.RequireFromString("12.90"),
			Stock:       10,
		}
	}

	tests := []struct {
		name            string
		mutate          func(r *model.CreateDishRequest)
		expectedField   string
		expectedMessage string
	}{
		{
			name:   "Valid",
			mutate: func(r *model.CreateDishRequest) {},
		},
		{
			name:   "Largest storable price",
			mutate: func(r *model.CreateDishRequest) { r.Price = decimal.RequireFromString("99999999.99") },
		},
		{
			name:            "Three decimal places",
			mutate:          func(r *model.CreateDishRequest) { r.Price = decimal.RequireFromString("0.001") },
			expectedField:   "price",
			expectedMessage: "must have at most 2 decimal places and be below 100000000",
		},
		{
			name:            "Price too large",
			mutate:          func(r *model.CreateDishRequest) { r.Price = decimal.RequireFromString("100000000") },
			expectedField:   "price",
			expectedMessage: "must have at most 2 decimal places and be below 100000000",
		},
		{
			name:            "Stock past INTEGER",
			mutate:          func(r *model.CreateDishRequest) { r.Stock = 3000000000 },
			expectedField:   "stock",
			expectedMessage: "must be at most 2147483647",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := Struct(&req)

			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{tt.expectedMessage}, verr.Fields[tt.expectedField])
			assert.Len(t, verr.Fields, 1)
		})
	}
}

func TestStruct_CreateUserRequest(t *testing.T) {
	err := Struct(&model.CreateUserRequest{
		Name:               "J",
		Email:              "not-an-email",
		RegistrationNumber: "",
		Password:           "short",
		Role:               "CHEF",
	})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"must be at least 2 characters"}, verr.Fields["name"])
	assert.Equal(t, []string{"must be a valid email"}, verr.Fields["email"])
	assert.Equal(t, []string{"is required"}, verr.Fields["registrationNumber"])
	assert.Equal(t, []string{"must be at least 8 characters"}, verr.Fields["password"])
	assert.Equal(t, []string{"must be one of [ADMIN WAITER KITCHEN]"}, verr.Fields["role"])
}

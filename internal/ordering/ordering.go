// Package ordering holds the pure rules of order placement: cart validation
// against catalog data, price computation and order numbering. It performs no I/O.
package ordering

import (
	"fmt"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DishIDs returns the distinct dish ids of the cart in first-seen order.
func DishIDs(cart []model.CartLine) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(cart))
	ids := make([]uuid.UUID, 0, len(cart))
	for i, line := range cart {
		id, err := uuid.Parse(line.DishID)
		if err != nil {
			return nil, model.NewValidationError(fmt.Sprintf("dishes[%d].dishId", i), "must be a valid UUID")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// PriceCart checks every cart line against the fetched dishes and snapshots prices.
//
// Each customization must belong to the customization set of its own dish.
// Line subtotal is dish price x quantity plus customization price x quantity for
// each customization; the total is the sum of subtotals.
func PriceCart(cart []model.CartLine, dishes []model.DishWithCustomizations) ([]model.PricedLine, decimal.Decimal, error) {
	ids, err := DishIDs(cart)
	if err != nil {
		return nil, decimal.Zero, err
	}

	byID := make(map[uuid.UUID]*model.DishWithCustomizations, len(dishes))
	for i := range dishes {
		byID[dishes[i].ID] = &dishes[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, decimal.Zero, model.ErrDishesNotFound
		}
	}

	total := decimal.Zero
	lines := make([]model.PricedLine, 0, len(cart))
	for i, line := range cart {
		if msg := quantityProblem(line.Quantity); msg != "" {
			return nil, decimal.Zero, model.NewValidationError(fmt.Sprintf("dishes[%d].quantity", i), msg)
		}

		dish := byID[uuid.MustParse(line.DishID)]
		allowed := make(map[uuid.UUID]model.Customization, len(dish.Customizations))
		for _, c := range dish.Customizations {
			allowed[c.ID] = c
		}

		priced := model.PricedLine{
			DishID:    dish.ID,
			Quantity:  line.Quantity,
			UnitPrice: dish.Price,
			Subtotal:  dish.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}

		for j, sel := range line.Customizations {
			cid, err := uuid.Parse(sel.CustomizationID)
			if err != nil {
				return nil, decimal.Zero, model.NewValidationError(
					fmt.Sprintf("dishes[%d].customizations[%d].customizationId", i, j), "must be a valid UUID")
			}
			if msg := quantityProblem(sel.Quantity); msg != "" {
				return nil, decimal.Zero, model.NewValidationError(
					fmt.Sprintf("dishes[%d].customizations[%d].quantity", i, j), msg)
			}
			c, ok := allowed[cid]
			if !ok {
				return nil, decimal.Zero, model.ErrCustomizationNotFound(sel.CustomizationID)
			}
			priced.Customizations = append(priced.Customizations, model.PricedCustomization{
				CustomizationID: c.ID,
				Quantity:        sel.Quantity,
				UnitPrice:       c.Price,
			})
			priced.Subtotal = priced.Subtotal.Add(c.Price.Mul(decimal.NewFromInt(int64(sel.Quantity))))
		}

		total = total.Add(priced.Subtotal)
		lines = append(lines, priced)
	}

	return lines, total, nil
}

func quantityProblem(q int) string {
	switch {
	case q <= 0:
		return "must be greater than zero"
	case q > model.MaxLineQuantity:
		return fmt.Sprintf("must be at most %d", model.MaxLineQuantity)
	}
	return ""
}

// StockDemand sums ordered quantities per dish.
func StockDemand(lines []model.PricedLine) map[uuid.UUID]int {
	demand := make(map[uuid.UUID]int, len(lines))
	for _, l := range lines {
		demand[l.DishID] += l.Quantity
	}
	return demand
}

// FormatOrderNumber renders n zero-padded to four digits.
func FormatOrderNumber(n int64) string {
	return fmt.Sprintf("%04d", n)
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DishCategory groups dishes on the menu.
type DishCategory string

const (
	CategoryStarter    DishCategory = "STARTER"
	CategoryMainCourse DishCategory = "MAIN_COURSE"
	CategorySideDish   DishCategory = "SIDE_DISH"
	CategoryDessert    DishCategory = "DESSERT"
	CategoryDrink      DishCategory = "DRINK"
)

// Valid reports whether c is a known category.
func (c DishCategory) Valid() bool {
	switch c {
	case CategoryStarter, CategoryMainCourse, CategorySideDish, CategoryDessert, CategoryDrink:
		return true
	}
	return false
}

// Dish represents a menu item.
type Dish struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Slug        string          `json:"slug" db:"slug"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Category    DishCategory    `json:"category" db:"category"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	ImageURL    *string         `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// Customization is an optional extra that can be attached to a dish.
type Customization struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	DishID    *uuid.UUID      `json:"dishId" db:"dish_id"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// DishWithCustomizations is a dish together with its customization set.
type DishWithCustomizations struct {
	Dish
	Customizations []Customization `json:"customizations"`
}

// CreateDishRequest is the payload for POST /dishes.
type CreateDishRequest struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Description string          `json:"description" validate:"required"`
	Category    DishCategory    `json:"category" validate:"required,oneof=STARTER MAIN_COURSE SIDE_DISH DESSERT DRINK"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,money"`
	Stock       int             `json:"stock" validate:"gt=0,lte=2147483647"`
}

// CreateCustomizationRequest is the payload for POST /dishes/customizations.
type CreateCustomizationRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"gt=0,money"`
}

// AttachCustomizationsRequest is the payload for PUT /dishes/{slug}/customizations.
type AttachCustomizationsRequest struct {
	CustomizationIDs []string `json:"customizationIds" validate:"required,min=1,dive,uuid"`
}

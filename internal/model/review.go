package model

import (
	"time"

	"github.com/google/uuid"
)

// Review ratings.
const (
	RatingDisliked = 1
	RatingLiked    = 2
)

// Review is a customer's thumbs up or down on a category.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Rating    int       `json:"rating" db:"rating"`
	Category  string    `json:"category" db:"category"`
	Comment   *string   `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateReviewRequest is the payload for POST /reviews.
type CreateReviewRequest struct {
	Rating   int     `json:"rating" validate:"oneof=1 2"`
	Category string  `json:"category" validate:"required"`
	Comment  *string `json:"comment" validate:"omitempty,max=500"`
}

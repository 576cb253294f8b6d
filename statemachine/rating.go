package statemachine

import (
	"errors"
	"fmt"

	"food-ordering-api/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrNotRateable      = errors.New("order is not completed")
	ErrAlreadyRated     = errors.New("order has already been rated")
	ErrRatingOutOfRange = fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
)

// CanRate is the rating gate: only a completed, not yet rated order accepts a rating.
func CanRate(order *models.Order) error {
	if order.OrderStatus != models.StatusCompleted {
		return fmt.Errorf("%w (current status: %s)", ErrNotRateable, order.OrderStatus)
	}
	if order.IsRated() {
		return ErrAlreadyRated
	}
	return nil
}

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrRatingOutOfRange
	}
	return nil
}

package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/tours-backend/internal/apperr"
)

func validTour() Tour {
	return Tour{
		Name:         "The Forest Hiker",
		Duration:     5,
		MaxGroupSize: 25,
		Difficulty:   DifficultyEasy,
		Price:        397,
		Summary:      "Breathtaking hike through the Canadian Banff National Park",
		ImageCover:   "tour-1-cover.jpg",
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, apperr.KindValidation, e.Kind)
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return names
}

func TestValidateNewTourOK(t *testing.T) {
	tour := validTour()
	assert.NoError(t, ValidateNewTour(&tour))
}

func TestValidateNewTourReportsEveryViolation(t *testing.T) {
	discount := 500.0
	tour := Tour{
		Name:          "too short",
		Duration:      0,
		Difficulty:    "extreme",
		Price:         400,
		PriceDiscount: &discount,
	}
	err := ValidateNewTour(&tour)
	require.Error(t, err)
	assert.ElementsMatch(t,
		[]string{"name", "duration", "maxGroupSize", "difficulty", "priceDiscount", "summary", "imageCover"},
		fieldNames(t, err))
}

func TestValidateNewTourNameLength(t *testing.T) {
	tour := validTour()
	tour.Name = "Short"
	assert.Contains(t, fieldNames(t, ValidateNewTour(&tour)), "name")

	tour.Name = "This tour name is far too long to be acceptable here"
	assert.Contains(t, fieldNames(t, ValidateNewTour(&tour)), "name")
}

func TestValidateNewTourDiscountEqualToPriceRejected(t *testing.T) {
	tour := validTour()
	d := tour.Price
	tour.PriceDiscount = &d
	assert.Contains(t, fieldNames(t, ValidateNewTour(&tour)), "priceDiscount")
}

func TestValidateTourUpdateIgnoresDiscountRule(t *testing.T) {
	// The discount-below-price rule is creation-only; an update carrying
	// a discount above the price must pass model validation.
	discount := 10000.0
	u := TourUpdate{PriceDiscount: &discount}
	assert.NoError(t, ValidateTourUpdate(&u))
}

func TestRoundRating(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{4.6666, 4.7},
		{4.64, 4.6},
		{4.5, 4.5},
		{1, 1},
		{4.45, 4.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundRating(tt.in), "RoundRating(%v)", tt.in)
	}
}

func TestSetRatingsAverageRounds(t *testing.T) {
	tour := validTour()
	tour.SetRatingsAverage(4.6666)
	assert.Equal(t, 4.7, tour.RatingsAverage)
}

func TestTourJSONHasDurationWeeks(t *testing.T) {
	tour := validTour()
	tour.Duration = 14
	b, err := json.Marshal(tour)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, 2.0, out["durationWeeks"])
	// The computed field must not shadow the stored ones.
	assert.Equal(t, 14.0, out["duration"])
}

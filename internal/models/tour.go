package models

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/baharkarakas/tours-backend/internal/apperr"
)

type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

// Location is a GeoJSON point on the tour itinerary. Day is the day of the
// tour the stop belongs to; zero for the start location.
type Location struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty"`
	Day         int       `json:"day,omitempty"`
}

// Guide is the projection of a User embedded in tour reads. It deliberately
// carries no credential or password-lifecycle fields.
type Guide struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Role  Role   `json:"role"`
}

const DefaultRatingsAverage = 4.5

type Tour struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Duration        int         `json:"duration"`
	MaxGroupSize    int         `json:"maxGroupSize"`
	Difficulty      Difficulty  `json:"difficulty"`
	RatingsAverage  float64     `json:"ratingsAverage"`
	RatingsQuantity int         `json:"ratingsQuantity"`
	Price           float64     `json:"price"`
	PriceDiscount   *float64    `json:"priceDiscount,omitempty"`
	Summary         string      `json:"summary"`
	Description     string      `json:"description,omitempty"`
	ImageCover      string      `json:"imageCover"`
	Images          []string    `json:"images,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	StartDates      []time.Time `json:"startDates,omitempty"`
	Secret          bool        `json:"secretTour"`
	StartLocation   *Location   `json:"startLocation,omitempty"`
	Locations       []Location  `json:"locations,omitempty"`
	GuideIDs        []string    `json:"-"`

	// Populated on reads; Reviews only on single-tour fetches.
	Guides  []Guide  `json:"guides,omitempty"`
	Reviews []Review `json:"reviews,omitempty"`
}

// RoundRating applies the one-decimal rounding rule used for ratingsAverage.
func RoundRating(v float64) float64 { return math.Round(v*10) / 10 }

func (t *Tour) SetRatingsAverage(v float64) { t.RatingsAverage = RoundRating(v) }

func (t *Tour) DurationWeeks() float64 { return float64(t.Duration) / 7 }

// MarshalJSON adds the computed durationWeeks field, which is never stored.
func (t Tour) MarshalJSON() ([]byte, error) {
	type alias Tour
	return json.Marshal(struct {
		alias
		DurationWeeks float64 `json:"durationWeeks"`
	}{alias(t), t.DurationWeeks()})
}

// ValidateNewTour checks every creation constraint and reports all violations
// at once. The priceDiscount < price rule is a creation-only rule; updates do
// not re-check it.
func ValidateNewTour(t *Tour) error {
	var fields []apperr.FieldError
	name := strings.TrimSpace(t.Name)
	if name == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Msg: "required"})
	} else if len(name) < 10 || len(name) > 40 {
		fields = append(fields, apperr.FieldError{Field: "name", Msg: "must be between 10 and 40 characters"})
	}
	if t.Duration <= 0 {
		fields = append(fields, apperr.FieldError{Field: "duration", Msg: "must be a positive number of days"})
	}
	if t.MaxGroupSize <= 0 {
		fields = append(fields, apperr.FieldError{Field: "maxGroupSize", Msg: "required"})
	}
	if !t.Difficulty.Valid() {
		fields = append(fields, apperr.FieldError{Field: "difficulty", Msg: "must be one of: easy, medium, difficult"})
	}
	if t.RatingsAverage != 0 && (t.RatingsAverage < 1 || t.RatingsAverage > 5) {
		fields = append(fields, apperr.FieldError{Field: "ratingsAverage", Msg: "must be between 1 and 5"})
	}
	if t.Price <= 0 {
		fields = append(fields, apperr.FieldError{Field: "price", Msg: "required"})
	}
	if t.PriceDiscount != nil && *t.PriceDiscount >= t.Price {
		fields = append(fields, apperr.FieldError{Field: "priceDiscount", Msg: "must be below the regular price"})
	}
	if strings.TrimSpace(t.Summary) == "" {
		fields = append(fields, apperr.FieldError{Field: "summary", Msg: "required"})
	}
	if strings.TrimSpace(t.ImageCover) == "" {
		fields = append(fields, apperr.FieldError{Field: "imageCover", Msg: "required"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

// TourUpdate is a partial change set; nil fields are left untouched.
type TourUpdate struct {
	Name          *string
	Duration      *int
	MaxGroupSize  *int
	Difficulty    *Difficulty
	Price         *float64
	PriceDiscount *float64
	Summary       *string
	Description   *string
	ImageCover    *string
	Images        []string
	StartDates    []time.Time
	Secret        *bool
	StartLocation *Location
	Locations     []Location
	GuideIDs      []string
}

// ValidateTourUpdate revalidates only the fields present in the change set.
func ValidateTourUpdate(u *TourUpdate) error {
	var fields []apperr.FieldError
	if u.Name != nil {
		if n := strings.TrimSpace(*u.Name); len(n) < 10 || len(n) > 40 {
			fields = append(fields, apperr.FieldError{Field: "name", Msg: "must be between 10 and 40 characters"})
		}
	}
	if u.Duration != nil && *u.Duration <= 0 {
		fields = append(fields, apperr.FieldError{Field: "duration", Msg: "must be a positive number of days"})
	}
	if u.MaxGroupSize != nil && *u.MaxGroupSize <= 0 {
		fields = append(fields, apperr.FieldError{Field: "maxGroupSize", Msg: "must be positive"})
	}
	if u.Difficulty != nil && !u.Difficulty.Valid() {
		fields = append(fields, apperr.FieldError{Field: "difficulty", Msg: "must be one of: easy, medium, difficult"})
	}
	if u.Price != nil && *u.Price <= 0 {
		fields = append(fields, apperr.FieldError{Field: "price", Msg: "must be positive"})
	}
	if u.Summary != nil && strings.TrimSpace(*u.Summary) == "" {
		fields = append(fields, apperr.FieldError{Field: "summary", Msg: "must not be empty"})
	}
	if u.ImageCover != nil && strings.TrimSpace(*u.ImageCover) == "" {
		fields = append(fields, apperr.FieldError{Field: "imageCover", Msg: "must not be empty"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

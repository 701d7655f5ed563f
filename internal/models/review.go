package models

import (
	"strings"
	"time"

	"github.com/baharkarakas/tours-backend/internal/apperr"
)

// ReviewAuthor is the projection of the authoring User joined into review
// reads: name and photo only. The tour side is never populated on reviews,
// since reviews are normally fetched in the context of a tour already.
type ReviewAuthor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type Review struct {
	ID        string        `json:"id"`
	Body      string        `json:"review"`
	Rating    int           `json:"rating"`
	CreatedAt time.Time     `json:"createdAt"`
	TourID    string        `json:"tour"`
	UserID    string        `json:"user"`
	Author    *ReviewAuthor `json:"author,omitempty"`
}

func ValidateNewReview(r *Review) error {
	var fields []apperr.FieldError
	if strings.TrimSpace(r.Body) == "" {
		fields = append(fields, apperr.FieldError{Field: "review", Msg: "cannot be empty"})
	}
	if r.Rating < 1 || r.Rating > 5 {
		fields = append(fields, apperr.FieldError{Field: "rating", Msg: "must be between 1 and 5"})
	}
	if r.TourID == "" {
		fields = append(fields, apperr.FieldError{Field: "tour", Msg: "review must belong to a tour"})
	}
	if r.UserID == "" {
		fields = append(fields, apperr.FieldError{Field: "user", Msg: "review must belong to a user"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

// ReviewUpdate carries the two author-editable fields.
type ReviewUpdate struct {
	Body   *string
	Rating *int
}

func ValidateReviewUpdate(u *ReviewUpdate) error {
	var fields []apperr.FieldError
	if u.Body != nil && strings.TrimSpace(*u.Body) == "" {
		fields = append(fields, apperr.FieldError{Field: "review", Msg: "cannot be empty"})
	}
	if u.Rating != nil && (*u.Rating < 1 || *u.Rating > 5) {
		fields = append(fields, apperr.FieldError{Field: "rating", Msg: "must be between 1 and 5"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

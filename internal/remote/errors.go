package remote

import (
	"errors"

	"artist-portfolio/internal/apperr"
)

// Wrap turns a store failure into the error a state manager hands back.
// msg is the user-facing text, the store error stays reachable as Cause.
// Validation and conflict errors reported by the store keep their kind.
func Wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(msg, err)
	}
	if ae := apperr.As(err); ae != nil {
		switch ae.Code {
		case apperr.CodeValidation, apperr.CodeConflict, apperr.CodeUnauthorized, apperr.CodeForbidden:
			return err
		case apperr.CodeNotFound:
			return apperr.NotFound(msg, err)
		}
	}
	return apperr.Remote(msg, err)
}

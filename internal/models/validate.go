package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseID parses a canonical 36-character UUID string. Braced, URN and
// unhyphenated forms are rejected so ids round-trip byte for byte.
func ParseID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 36 {
		return uuid.Nil, errInvalidID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

var errInvalidID = errors.New("malformed identifier")

// IsInvalidID reports whether err came from ParseID.
func IsInvalidID(err error) bool { return errors.Is(err, errInvalidID) }

// firstFailure maps a validator error onto the message registered for the
// failing field, falling back to fallback.
func firstFailure(err error, messages map[string]string, fallback string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Field()+"."+verrs[0].Tag()]; ok {
			return appErr.Invalid(msg)
		}
	}
	return appErr.Wrap(err, appErr.CodeInvalid, fallback)
}

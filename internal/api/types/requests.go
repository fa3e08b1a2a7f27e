package types

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

// MaxBodyBytes bounds create and update request bodies.
const MaxBodyBytes = 1 << 20

// DecodeJSON reads a JSON object from the request body into dst. Unknown
// fields are ignored, an empty body leaves dst untouched and anything after
// the first value is rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return decodeErr(err)
	}
	// The body must hold exactly one value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("trailing data after JSON value")
		}
		return decodeErr(err)
	}
	return nil
}

func decodeErr(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return appErr.Invalid("Request body too large")
	}
	return appErr.Wrap(err, appErr.CodeInvalid, "Invalid JSON body")
}

// SearchQuery extracts the q parameter. It returns nil when q is absent and
// fails when q is given more than once.
func SearchQuery(values url.Values) (*string, error) {
	q, ok := values["q"]
	if !ok {
		return nil, nil
	}
	if len(q) != 1 {
		return nil, appErr.Invalid("Search query must be a single string")
	}
	return &q[0], nil
}

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "skincare/pkg/errors"
)

// DecodeJSON reads a single JSON document from the request body into v.
// Unknown fields are rejected so typos in form field names surface early.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body is empty")
		}
		return apperrors.InvalidInput("Invalid request body: " + err.Error())
	}
	return nil
}

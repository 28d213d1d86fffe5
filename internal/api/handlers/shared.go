package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies. A full batch of scenarios fits easily.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T, rejecting unknown fields and
// trailing data.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if dec.More() {
		return v, fmt.Errorf("unexpected data after JSON body")
	}
	return v, nil
}

// respondValidation reports a validation failure as 400 with the per-field
// messages as details.
func respondValidation(w http.ResponseWriter, err error) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", ve.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}

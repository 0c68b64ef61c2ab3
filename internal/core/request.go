// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"net/http"
	"sync"
)

const maxBodyBytes = 1 << 20

var requestValidator = sync.OnceValue(NewValidator)

// DecodeJSON reads a JSON body of at most 1 MiB into dst. On failure it
// writes the 400 itself and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, "invalid request body")
		return false
	}
	return true
}

// DecodeValid is DecodeJSON followed by struct tag validation.
func DecodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !DecodeJSON(w, r, dst) {
		return false
	}
	if err := requestValidator().Struct(dst); err != nil {
		BadRequest(w, FormatValidationError(err))
		return false
	}
	return true
}

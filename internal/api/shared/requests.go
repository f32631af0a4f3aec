package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes bounds every JSON request body.
const MaxRequestBodyBytes = 1 << 20

// ErrInvalidJSON is returned by DecodeJSON for a body that is not a single JSON value.
var ErrInvalidJSON = errors.New("invalid JSON body")

// Global validator instance for reuse. Field names in its errors are the
// JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v. Unknown fields are ignored.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	dec := json.NewDecoder(body)

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after JSON value", ErrInvalidJSON)
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
// Types with their own Validate method use it instead.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}

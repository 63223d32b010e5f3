package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/numberrush/numberrush/internal/api/apierr"
)

var validate = validator.New()

// decode unmarshals and validates a JSON request body
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			return apierr.NewInvalidRequestError(
				fmt.Sprintf("invalid field %q: failed %q constraint", field.Field(), field.Tag()),
			)
		}
		return apierr.NewInvalidRequestError("invalid request body")
	}
	return nil
}

// queryInt parses an optional integer query parameter; 0 means absent
func queryInt(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, apierr.NewInvalidRequestError(fmt.Sprintf("invalid query parameter %q", name))
	}
	return v, nil
}

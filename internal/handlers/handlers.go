package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/services"
)

//go:generate mockgen -source=create_user.go -destination=mock_create_user.go -package=handlers
//go:generate mockgen -source=get_user.go -destination=mock_get_user.go -package=handlers
//go:generate mockgen -source=list_users.go -destination=mock_list_users.go -package=handlers
//go:generate mockgen -source=update_user.go -destination=mock_update_user.go -package=handlers
//go:generate mockgen -source=delete_user.go -destination=mock_delete_user.go -package=handlers
//go:generate mockgen -source=health.go -destination=mock_health.go -package=handlers

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`

	// Validation failures, one per field
	Details []string `json:"details,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate decodes a single JSON object into dst, rejecting unknown
// fields, and validates it. The returned error is safe to show to clients.
func decodeAndValidate(r *http.Request, dst any) (details []string, err error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request body is empty")
		}
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid request body: unexpected data after JSON object")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return validationDetails(verrs), errors.New("validation failed")
		}
		return nil, err
	}
	return nil, nil
}

func validationDetails(verrs validator.ValidationErrors) []string {
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details = append(details, fe.Field()+" is required")
		case "email":
			details = append(details, fe.Field()+" must be a valid email")
		case "min":
			if fe.Kind() == reflect.String {
				details = append(details, fe.Field()+" must not be empty")
			} else {
				details = append(details, fe.Field()+" must not be less than "+fe.Param())
			}
		case "max":
			details = append(details, fe.Field()+" must not be greater than "+fe.Param())
		default:
			details = append(details, fe.Field()+" is invalid")
		}
	}
	return details
}

// parseUserID reads the {id} URL parameter, which must be a positive integer.
func parseUserID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return id, nil
}

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "User not found"})
	case errors.Is(err, services.ErrUserConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "User with this email already exists"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

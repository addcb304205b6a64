package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"listeditor/internal/domain"
)

// MaxBodyBytes caps request bodies
const MaxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateListRequest is the body of POST /api/lists. Both fields are optional.
type CreateListRequest struct {
	Name    string          `json:"name" validate:"max=200"`
	Records []domain.Record `json:"records"`
}

// ValueRequest carries the value of a new node
type ValueRequest struct {
	Value string `json:"value" validate:"required,max=1024"`
}

// PositionRequest carries a value and the index to insert after
type PositionRequest struct {
	Value string `json:"value" validate:"required,max=1024"`
	Index *int   `json:"index" validate:"required"`
}

// MoveRequest carries a canvas position
type MoveRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// decode reads and validates a JSON body, writing the error reply itself.
// An empty body decodes as the zero value.
func (h *ListHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}

	if err := validateRequest(dst); err != nil {
		h.writeServiceError(w, "Invalid request body", err)
		return false
	}
	return true
}

// validateRequest runs the struct tags and converts failures to a
// *domain.ValidationError
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, domain.FieldError{
			Parameter: fe.Field(),
			Error:     fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field is required"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("Failed %q validation", fe.Tag())
	}
}

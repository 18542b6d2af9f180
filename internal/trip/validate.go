package trip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes one rejected field of a Request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid trip request: " + strings.Join(msgs, "; ")
}

// Validate checks the request against the form rules. It returns a *ValidationError
// describing all failing fields, or nil.
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldName(fe),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	switch fe.StructField() {
	case "StartDate":
		return "startDate"
	case "EndDate":
		return "endDate"
	}
	name := fe.StructField()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Source":
		return "please enter a valid source location"
	case "Destination":
		return "please enter a valid destination"
	case "StartDate":
		return "please select a start date"
	case "EndDate":
		if fe.Tag() == "gtefield" {
			return "end date must not be before start date"
		}
		return "please select an end date"
	case "Budget":
		if fe.Tag() == "lte" {
			return "budget is too high"
		}
		return "budget must be at least $100"
	case "Travelers":
		if fe.Tag() == "lte" {
			return "maximum 20 travelers"
		}
		return "at least 1 traveler is required"
	case "Interests":
		return "select at least one interest"
	}
	if strings.HasPrefix(fe.StructField(), "Interests[") {
		return "interests must not be blank"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var hhmmPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", isHHMM)
	_ = v.RegisterValidation("hhmm_range", isHHMMRange)
	return v
}

// FieldError describes one failed constraint.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error collects every failed constraint of a request.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Struct validates s against its struct tags. It returns *Error when any
// constraint fails.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: getErrorMessage(fe),
		})
	}
	return out
}

// Var validates a single value against tag.
func Var(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   field,
			Tag:     fe.Tag(),
			Message: messageFor(field, fe.Tag(), fe.Param()),
		})
	}
	return out
}

// ParseHHMM parses a 24-hour "HH:MM" clock time into minutes after midnight.
func ParseHHMM(s string) (int, bool) {
	if !hhmmPattern.MatchString(s) {
		return 0, false
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func isHHMM(fl validator.FieldLevel) bool {
	_, ok := ParseHHMM(fl.Field().String())
	return ok
}

// isHHMMRange accepts "HH:MM-HH:MM" with the opening time before the
// closing time.
func isHHMMRange(fl validator.FieldLevel) bool {
	opens, closes, ok := strings.Cut(fl.Field().String(), "-")
	if !ok {
		return false
	}
	from, ok := ParseHHMM(strings.TrimSpace(opens))
	if !ok {
		return false
	}
	to, ok := ParseHHMM(strings.TrimSpace(closes))
	if !ok {
		return false
	}
	return from < to
}

func getErrorMessage(err validator.FieldError) string {
	return messageFor(err.Field(), err.Tag(), err.Param())
}

func messageFor(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + param + " characters"
	case "max":
		return field + " must be at most " + param + " characters"
	case "gte":
		return field + " must be greater than or equal to " + param
	case "lte":
		return field + " must be less than or equal to " + param
	case "gt":
		return field + " must be greater than " + param
	case "oneof":
		return field + " must be one of: " + param
	case "hhmm":
		return field + " must be a time in HH:MM format"
	case "hhmm_range":
		return field + " must be a range in HH:MM-HH:MM format"
	default:
		return field + " is invalid"
	}
}

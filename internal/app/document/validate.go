package document

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var elementIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("element_id", validateElementID)
	validate.RegisterValidation("data_type", validateDataType)

	// Report JSON field names in errors instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate checks a document against its schema tags.
func Validate(d *Document) error {
	if err := validate.Struct(d); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
			}
			return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("minimum value/length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("maximum value/length is %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "element_id":
		return "must be alphanumeric with underscores and hyphens"
	case "data_type":
		return "must be a valid port data type"
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}

// validateElementID accepts node/edge/port identifiers: alphanumeric
// plus underscore and hyphen, up to 100 characters.
func validateElementID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	return id != "" && len(id) <= 100 && elementIDPattern.MatchString(id)
}

// validateDataType accepts lowercase type names such as "any",
// "string", "record_batch".
func validateDataType(fl validator.FieldLevel) bool {
	t := fl.Field().String()
	if t == "" || len(t) > 50 {
		return false
	}
	for _, r := range t {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_') {
			return false
		}
	}
	return true
}

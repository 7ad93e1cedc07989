package form

import (
	"log"
	"regexp"

	"github.com/stackmint/chatwidget/internal/content"
)

// Validate runs every field check in declaration order and returns the full
// field-id → message mapping. Required-empty is checked first; the pattern
// check only runs when a value is present. An empty map means the form may
// be submitted.
func Validate(fields []content.FormField, values map[string]any) map[string]string {
	errs := make(map[string]string)
	for _, f := range fields {
		if msg := validateField(f, values[f.ID]); msg != "" {
			errs[f.ID] = msg
		}
	}
	return errs
}

func validateField(f content.FormField, value any) string {
	if f.Required && isEmpty(value) {
		return f.Label + " is required"
	}

	if f.Validation == nil || f.Validation.Pattern == "" {
		return ""
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return ""
	}

	re, err := regexp.Compile(f.Validation.Pattern)
	if err != nil {
		// A broken pattern never blocks the user.
		log.Printf("form: invalid pattern for field %s: %v", f.ID, err)
		return ""
	}
	if !re.MatchString(s) {
		if f.Validation.Message != "" {
			return f.Validation.Message
		}
		return f.Label + " format is invalid"
	}
	return ""
}

// isEmpty treats the unchecked checkbox (false) and the blank string as
// empty; anything else counts as a value.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	default:
		return false
	}
}

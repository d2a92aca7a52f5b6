package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// ClockTimePattern matches a zero-padded 24 hour "HH:MM" time
	ClockTimePattern = `^([01][0-9]|2[0-3]):[0-5][0-9]$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	ClockTime *regexp.Regexp
}{
	ClockTime: regexp.MustCompile(ClockTimePattern),
}

var (
	setupOnce sync.Once
	setupErr  error
)

// Setup registers the custom rules on gin's validator engine. It is safe to
// call more than once; only the first call has an effect.
func Setup(viewColumns []string) error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		setupErr = Register(v, viewColumns)
	})
	return setupErr
}

// Register adds the planner's rules to v and makes errors report JSON or
// form field names instead of Go field names.
func Register(v *validator.Validate, viewColumns []string) error {
	v.RegisterTagNameFunc(fieldName)

	allowed := make(map[string]bool, len(viewColumns))
	for _, c := range viewColumns {
		allowed[c] = true
	}

	rules := map[string]validator.Func{
		"clocktime": func(fl validator.FieldLevel) bool {
			return IsClockTime(fl.Field().String())
		},
		"timeafter": func(fl validator.FieldLevel) bool {
			other := fl.Parent().FieldByName(fl.Param())
			if !other.IsValid() || other.Kind() != reflect.String {
				return false
			}
			return TimeAfter(fl.Field().String(), other.String())
		},
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"viewcolumn": func(fl validator.FieldLevel) bool {
			return allowed[fl.Field().String()]
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s rule: %w", tag, err)
		}
	}
	return nil
}

// IsClockTime reports whether s is a valid "HH:MM" time
func IsClockTime(s string) bool {
	return CompiledPatterns.ClockTime.MatchString(s)
}

// TimeAfter reports whether end is strictly later than start. Both must be
// valid clock times; zero padding makes string order equal time order.
func TimeAfter(end, start string) bool {
	return IsClockTime(end) && IsClockTime(start) && end > start
}

// Message renders a human readable message for one failed rule
func Message(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "uuid":
		return field + " must be a valid id"
	case "clocktime":
		return field + " must be a time formatted as HH:MM"
	case "timeafter":
		return field + " must be later than " + e.Param()
	case "viewcolumn":
		return fmt.Sprintf("%v is not a known column", e.Value())
	default:
		return field + " validation failed: " + e.Tag()
	}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

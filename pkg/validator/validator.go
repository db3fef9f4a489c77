package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"required_if": "{field} is required when {param}",
		"email":       "{field} must be a valid email address",
		"oneof":       "{field} must be one of {param}",
		"gt":          "{field} must be greater than {param}",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be at least {param} characters",
		"max":         "{field} must be at most {param} characters",
		"datetime":    "{field} must be a YYYY-MM-DD date",
		"numeric":     "{field} must be a number",
		"slottime":    "{field} must look like 9:00 AM",
	}

	slotTimePattern = regexp.MustCompile(`^(1[0-2]|[1-9]):[0-5][0-9] (AM|PM)$`)

	standalone *val.Validate
	registerMu sync.Mutex
	registered = map[*val.Validate]bool{}
)

func init() {
	standalone = val.New(val.WithRequiredStructEnabled())
	standalone.SetTagName("binding")
	if err := Register(standalone); err != nil {
		panic(err)
	}
}

// Register installs json field naming and the custom rules on v.
func Register(v *val.Validate) error {
	registerMu.Lock()
	defer registerMu.Unlock()

	if registered[v] {
		return nil
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("slottime", func(fl val.FieldLevel) bool {
		return slotTimePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	registered[v] = true
	return nil
}

// SetupBinding registers the custom rules on gin's binding validator.
func SetupBinding() error {
	v, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return Register(v)
}

// ValidateStruct checks data against its binding tags.
func ValidateStruct(data any) error {
	return standalone.Struct(data)
}

// IsSlotTime reports whether s is a slot display time such as "9:00 AM".
func IsSlotTime(s string) bool {
	return slotTimePattern.MatchString(s)
}

// Message turns a validation error into a single human readable line.
func Message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			msg := messages[valErr.Tag()]
			if msg == "" {
				continue
			}

			param := valErr.Param()
			if valErr.Tag() == "required_if" {
				param = conditionText(param)
			}

			msg = strings.ReplaceAll(msg, "{field}", valErr.Field())
			msg = strings.ReplaceAll(msg, "{param}", param)
			return msg
		}

		return valErrors.Error()
	}

	return err.Error()
}

// conditionText renders a required_if param ("PaymentMethod insurance") as
// "paymentMethod is insurance".
func conditionText(param string) string {
	parts := strings.Fields(param)
	if len(parts) != 2 {
		return param
	}
	field := parts[0]
	if field != "" {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	return field + " is " + parts[1]
}

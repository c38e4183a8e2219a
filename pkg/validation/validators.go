package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"young-ats/pkg/normalize"
)

// New returns a validator with the generic custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("uf", UF)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// RegisterEnum registers tag as a closed set of allowed string values. With
// allowEmpty an empty field passes and is left to "required".
func RegisterEnum(v *validator.Validate, tag string, allowEmpty bool, values ...string) error {
	allowed := make(map[string]struct{}, len(values))
	for _, val := range values {
		allowed[val] = struct{}{}
	}
	return v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" && allowEmpty {
			return true
		}
		_, ok := allowed[val]
		return ok
	})
}

// UF validates a two-letter Brazilian state code, case-insensitive.
func UF(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if strings.TrimSpace(val) == "" {
		return true
	}
	return normalize.IsStateCode(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		// Supplementary planes are mostly emoji/symbols
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

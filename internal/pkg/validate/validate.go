package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// space matches the same characters as \s in browser form validation: ASCII
// whitespace including \v, Unicode space separators, line and paragraph
// separators, and the byte order mark.
const space = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	// Letters, spaces, hyphens and apostrophes; 1-100 characters.
	nameRe = regexp.MustCompile(`^[A-Za-z` + space + `'-]{1,100}$`)
	// local@domain.tld with no whitespace or extra '@'.
	emailRe = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
)

// v is the package-level singleton validator. Custom tags are registered in
// init() before the first call to Struct or Var.
var v = validator.New()

func init() {
	mustRegister("contactname", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
	mustRegister("simpleemail", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	// Length bounds in UTF-16 code units, the unit browsers count in.
	mustRegister("maxutf16", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && utf16Len(fl.Field().String()) <= n
	})
	mustRegister("minutf16", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && utf16Len(fl.Field().String()) >= n
	})
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// Var validates a single value against a tag expression such as "max=1000".
func Var(field interface{}, tag string) error {
	return v.Var(field, tag)
}

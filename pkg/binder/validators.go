package binder

import (
	"reflect"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var (
	dateRE = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)
)

// dateValidator accepts YYYY-MM-DD strings naming a real calendar day, and the
// empty string. Pair it with required when a value has to be present.
func dateValidator(fl validator.FieldLevel) bool {
	value, ok := stringValue(fl.Field())
	if !ok || value == "" {
		return true
	}
	if !dateRE.MatchString(value) {
		return false
	}
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// afterValidator checks that a YYYY-MM-DD string falls strictly after the
// date given as the tag param, e.g. `validate:"after=1970-01-01"`. Empty or
// unparseable values pass so the date rule reports them instead.
func afterValidator(fl validator.FieldLevel) bool {
	bound, err := time.Parse(dateLayout, fl.Param())
	if err != nil {
		panic("binder: invalid after param " + fl.Param())
	}
	value, ok := stringValue(fl.Field())
	if !ok || value == "" {
		return true
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return true
	}
	return d.After(bound)
}

func stringValue(v reflect.Value) (string, bool) {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.String {
		return "", false
	}
	return v.String(), true
}

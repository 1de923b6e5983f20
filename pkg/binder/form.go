package binder

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// DefaultMaxFormSize limits urlencoded bodies.
const DefaultMaxFormSize = 64 << 10 // 64 KB

// Form creates a binder for application/x-www-form-urlencoded bodies.
// Only string fields are bound. The field name comes from the `form` tag,
// then the first part of the `json` tag, then the lower-cased Go name.
// `form:"-"` skips a field.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if !hasMediaType(r, "application/x-www-form-urlencoded") {
			return ErrNotApplicable
		}

		r.Body = http.MaxBytesReader(nil, r.Body, DefaultMaxFormSize)
		if err := r.ParseForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, ErrBodyTooLarge)
			}
			return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
		}

		return bindStrings(v, r.PostForm)
	}
}

func bindStrings(v any, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParseForm)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParseForm)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() || field.Kind() != reflect.String {
			continue
		}
		name, skip := fieldName(rt.Field(i))
		if skip {
			continue
		}
		if vals := values[name]; len(vals) > 0 {
			field.SetString(vals[0])
		}
	}
	return nil
}

func fieldName(f reflect.StructField) (string, bool) {
	for _, tagName := range []string{"form", "json"} {
		tag := f.Tag.Get(tagName)
		if tag == "-" {
			return "", true
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name, false
		}
	}
	return strings.ToLower(f.Name), false
}

package fields

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// HasData reports whether v counts as a filled-in value. nil, blank
// strings and empty arrays are "no data"; anything else, empty objects
// included, is data.
func HasData(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	case json.RawMessage:
		s := strings.TrimSpace(string(val))
		return s != "" && s != "null" && s != `""` && s != "[]"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return HasData(rv.Elem().Interface())
	}
	return true
}

// ValidationError describes why a value was rejected for a field.
type ValidationError struct {
	FieldID string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.FieldID, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidValue }

func invalid(def FieldDefinition, format string, args ...any) error {
	return &ValidationError{FieldID: def.ID, Reason: fmt.Sprintf(format, args...)}
}

// ValidateValue checks v against def. Empty values are always accepted so
// that a user can clear a field.
func ValidateValue(def FieldDefinition, v any) error {
	if !HasData(v) {
		return nil
	}

	switch def.Type {
	case FieldTypeText, FieldTypeTextarea:
		s, ok := v.(string)
		if !ok {
			return invalid(def, "expected a string, got %T", v)
		}
		return checkLength(def, s)

	case FieldTypeURL:
		s, ok := v.(string)
		if !ok {
			return invalid(def, "expected a URL string, got %T", v)
		}
		if err := checkLength(def, s); err != nil {
			return err
		}
		u, err := url.Parse(strings.TrimSpace(s))
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return invalid(def, "%q is not an http(s) URL", s)
		}
		return nil

	case FieldTypeSelect:
		s, ok := v.(string)
		if !ok {
			return invalid(def, "expected a single option, got %T", v)
		}
		if !def.HasOption(s) {
			return invalid(def, "%q is not an allowed option", s)
		}
		return nil

	case FieldTypeMultiSelect:
		items, ok := stringItems(v)
		if !ok {
			return invalid(def, "expected a list of options, got %T", v)
		}
		seen := make(map[string]struct{}, len(items))
		for _, item := range items {
			if !def.HasOption(item) {
				return invalid(def, "%q is not an allowed option", item)
			}
			if _, dup := seen[item]; dup {
				return invalid(def, "option %q selected twice", item)
			}
			seen[item] = struct{}{}
		}
		return nil

	case FieldTypeNumber:
		n, ok := toNumber(v)
		if !ok {
			return invalid(def, "expected a number, got %v", v)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return invalid(def, "%v is out of range", v)
		}
		return nil

	case FieldTypeDate, FieldTypeFile, FieldTypeRichText:
		return invalid(def, "field type %q is not supported yet", def.Type)
	}

	return invalid(def, "unknown field type %q", def.Type)
}

// ValidateValues validates every value whose key is a field of category.
// Keys that are not fields of category are left alone: they may be hidden
// data kept from a previous category.
func ValidateValues(category string, values Values) error {
	for id, v := range values {
		def, ok := GetFieldByID(category, id)
		if !ok {
			continue
		}
		if err := ValidateValue(def, v); err != nil {
			return err
		}
	}
	return nil
}

func checkLength(def FieldDefinition, s string) error {
	if def.MaxLength > 0 && utf8.RuneCountInString(s) > def.MaxLength {
		return invalid(def, "longer than %d characters", def.MaxLength)
	}
	return nil
}

func stringItems(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

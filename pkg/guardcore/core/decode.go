package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

var (
	validate = newValidator()

	jsonNumberType = reflect.TypeOf(json.Number(""))
	timeType       = reflect.TypeOf(time.Time{})
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Decode converts a parsed JSON value into out and validates the result.
// Non-pointer struct fields must be present and non-null in the input;
// pointer fields are optional. Numbers must be json.Number or native Go
// numbers; no weak conversion between kinds is performed.
func Decode(input any, out any) error {
	if target := reflect.TypeOf(out); target != nil && target.Kind() == reflect.Pointer {
		if err := rejectNull(input, target.Elem(), ""); err != nil {
			return err
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:           "json",
		ErrorUnset:        true,
		AllowUnsetPointer: true,
		Result:            out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			strictStringHook,
			timeHook,
		),
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return err
	}
	return Validate(out)
}

// DecodeJSON parses data and decodes it into out.
func DecodeJSON(data []byte, out any) error {
	value, err := parseJSON(data, true)
	if err != nil {
		return err
	}
	return Decode(value, out)
}

// Validate runs struct tag validation on v. Values that are not structs, or
// pointers to structs, pass unchecked.
func Validate(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(rv.Interface()); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("validate: %w", err)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func strictStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from == jsonNumberType && to.Kind() == reflect.String {
		return nil, fmt.Errorf("expected string, got number %s", data)
	}
	return data, nil
}

// timeHook accepts ISO-8601 strings (with or without zone, zone-less values
// read as UTC) and numeric unix seconds.
func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}

	switch value := data.(type) {
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return parsed, nil
		}
		parsed, err := dateparse.ParseIn(value, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", value, err)
		}
		return parsed, nil
	case json.Number:
		seconds, err := value.Float64()
		if err != nil {
			return nil, fmt.Errorf("parse unix time %q: %w", value, err)
		}
		whole := int64(seconds)
		nanos := int64((seconds - float64(whole)) * float64(time.Second))
		return time.Unix(whole, nanos).UTC(), nil
	default:
		return data, nil
	}
}

// rejectNull walks input alongside target and fails on a null that would land
// in a value that cannot hold it. mapstructure skips nil inputs without
// calling hooks, so the zero value would otherwise be kept silently.
func rejectNull(input any, target reflect.Type, path string) error {
	if target.Kind() == reflect.Pointer {
		if input == nil {
			return nil
		}
		target = target.Elem()
	}
	if target.Kind() == reflect.Interface {
		return nil
	}
	if input == nil {
		name := path
		if name == "" {
			name = "value"
		}
		return fmt.Errorf("'%s' expected %s, got null", name, target)
	}
	if target == timeType {
		return nil
	}

	switch target.Kind() {
	case reflect.Struct:
		fields, ok := input.(map[string]any)
		if !ok {
			return nil
		}
		return rejectNullFields(fields, target, path)
	case reflect.Slice, reflect.Array:
		items, ok := input.([]any)
		if !ok {
			return nil
		}
		for i, item := range items {
			if err := rejectNull(item, target.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		entries, ok := input.(map[string]any)
		if !ok {
			return nil
		}
		for key, entry := range entries {
			if err := rejectNull(entry, target.Elem(), joinPath(path, key)); err != nil {
				return err
			}
		}
	}
	return nil
}

func rejectNullFields(fields map[string]any, target reflect.Type, path string) error {
	for i := 0; i < target.NumField(); i++ {
		field := target.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if field.Anonymous && name == "" && field.Type.Kind() == reflect.Struct {
			if err := rejectNullFields(fields, field.Type, path); err != nil {
				return err
			}
			continue
		}
		if name == "" {
			name = field.Name
		}

		value, present := fields[name]
		if !present {
			continue
		}
		if err := rejectNull(value, field.Type, joinPath(path, name)); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// parseJSON decodes a response body keeping numbers as json.Number. When
// strict is set an empty body is an error.
func parseJSON(body []byte, strict bool) (any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		if strict {
			return nil, errors.New("empty response body")
		}
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if decoder.More() {
		return nil, errors.New("parse json: trailing data after value")
	}
	return value, nil
}

func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}

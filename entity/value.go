package entity

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Value wraps a field value and provides conversion helpers.
type Value struct {
	Raw any
}

// String returns the value as a string, nil being empty.
func (v Value) String() string {

	switch raw := v.Raw.(type) {
	case nil:
		return ""
	case string:
		return raw
	case time.Time:
		return raw.Format(time.RFC3339)
	}

	return fmt.Sprintf("%v", v.Raw)
}

// Int returns the value as an int.
// Json numbers decode as float64 so those are accepted when whole.
func (v Value) Int() (int, error) {

	switch raw := v.Raw.(type) {
	case int:
		return raw, nil
	case int64:
		return int(raw), nil
	case float64:
		if raw == float64(int(raw)) {
			return int(raw), nil
		}
	}

	return 0, errors.Errorf("value is not an int: %T", v.Raw)
}

// Time returns the value as a time.Time, parsing RFC3339 strings.
func (v Value) Time() (time.Time, error) {

	switch raw := v.Raw.(type) {
	case time.Time:
		return raw, nil
	case string:
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, errors.Wrapf(err, "failed to parse time from %q", raw)
		}
		return t, nil
	}

	return time.Time{}, errors.Errorf("value is not a time: %T", v.Raw)
}

// Field is a named value pulled from a row.
type Field struct {
	Name  string
	Value Value
}

// Fields returns the enumerable fields of a row.
//
// For a struct these are the exported fields, named by json tag when present.
// For a map they are its values, ordered by key.
// Anything else is a single unnamed field.
func Fields(row any) (fields []Field) {

	rv := reflect.ValueOf(row)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			name, ok := fieldName(sf)
			if !ok {
				continue
			}
			fields = append(fields, Field{Name: name, Value: Value{Raw: raw(rv.Field(i))}})
		}

	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, key := range keys {
			fields = append(fields, Field{
				Name:  fmt.Sprint(key.Interface()),
				Value: Value{Raw: raw(rv.MapIndex(key))},
			})
		}

	case reflect.Invalid:
		return nil

	default:
		fields = append(fields, Field{Value: Value{Raw: rv.Interface()}})
	}

	return
}

// Lookup finds a named field of a row.
func Lookup(row any, name string) (Value, bool) {

	for _, field := range Fields(row) {
		if field.Name == name {
			return field.Value, true
		}
	}
	return Value{}, false
}

// FieldNames returns the field names available on rows of typ.
// ok is false when names are only known per row, as with maps.
func FieldNames(typ reflect.Type) (names []string, ok bool) {

	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, false
	}

	for i := 0; i < typ.NumField(); i++ {
		name, ok := fieldName(typ.Field(i))
		if ok {
			names = append(names, name)
		}
	}
	return names, true
}

// unexported

func fieldName(sf reflect.StructField) (string, bool) {

	if !sf.IsExported() {
		return "", false
	}

	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	return name, true
}

func raw(rv reflect.Value) any {

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

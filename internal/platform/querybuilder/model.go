package querybuilder

import (
	"fmt"
	"reflect"
)

// InsertModel builds an insert for a row struct using its `db` tags. Fields
// tagged `db:"-"` or left untagged are skipped.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", nil, fmt.Errorf("insert model is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert model must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	columns := make([]string, 0, t.NumField())
	values := make([]any, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, tag)
		values = append(values, v.Field(i).Interface())
	}
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("insert model has no db-tagged fields")
	}

	builder := InsertInto(table).Columns(columns...).Values(values...)
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}
	return builder.ToSQL()
}

package querybuilder

import (
	"fmt"
	"reflect"
)

// InsertModel builds an INSERT for a struct (or slice of structs) whose
// columns come from `db` tags. Fields tagged "-" or without a tag are
// skipped.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("insert model is nil")
		}
		value = value.Elem()
	}

	var rows []reflect.Value
	switch value.Kind() {
	case reflect.Struct:
		rows = []reflect.Value{value}
	case reflect.Slice:
		for i := 0; i < value.Len(); i++ {
			row := value.Index(i)
			for row.Kind() == reflect.Pointer {
				row = row.Elem()
			}
			if row.Kind() != reflect.Struct {
				return "", nil, fmt.Errorf("insert model slice element %d is not a struct", i)
			}
			rows = append(rows, row)
		}
	default:
		return "", nil, fmt.Errorf("insert model must be a struct or slice of structs, got %s", value.Kind())
	}
	if len(rows) == 0 {
		return "", nil, fmt.Errorf("insert model slice is empty")
	}

	columns := taggedColumns(rows[0].Type())
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("insert model has no db-tagged fields")
	}

	builder := InsertInto(table).Columns(columns...)
	for _, row := range rows {
		values := make([]any, 0, len(columns))
		rowType := row.Type()
		for i := 0; i < rowType.NumField(); i++ {
			tag := rowType.Field(i).Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			values = append(values, row.Field(i).Interface())
		}
		builder.Values(values...)
	}
	if suffix != "" {
		builder.Suffix(suffix)
	}
	return builder.ToSQL()
}

func taggedColumns(t reflect.Type) []string {
	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, tag)
	}
	return columns
}

// Copyright © 2024 The ansible-powerflex authors

// Package tableprinter renders slices of structs as aligned text tables.
package tableprinter

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
)

// Print writes the exported fields of a slice of structs (or struct
// pointers) as a table. When fields are given, only those columns are
// printed, in the given order.
func Print(out io.Writer, data interface{}, fields ...string) error {
	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice {
		return fmt.Errorf("input must be a slice")
	}
	if val.Len() == 0 {
		fmt.Fprintln(out, "No data to display.")
		return nil
	}

	elementType := val.Type().Elem()
	isPtr := elementType.Kind() == reflect.Ptr
	if isPtr {
		elementType = elementType.Elem()
	}
	if elementType.Kind() != reflect.Struct {
		return fmt.Errorf("slice elements must be structs or pointers to structs")
	}

	headers, fieldIndices, err := selectColumns(elementType, fields)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t")+"\t")

	for i := 0; i < val.Len(); i++ {
		element := val.Index(i)
		if isPtr {
			element = element.Elem()
		}
		values := make([]string, len(headers))
		for k, j := range fieldIndices {
			values[k] = fmt.Sprintf("%v", element.Field(j).Interface())
		}
		fmt.Fprintln(w, strings.Join(values, "\t")+"\t")
	}

	return w.Flush()
}

func selectColumns(structType reflect.Type, fields []string) ([]string, []int, error) {
	var headers []string
	var fieldIndices []int

	if len(fields) == 0 {
		for i := 0; i < structType.NumField(); i++ {
			field := structType.Field(i)
			if !field.IsExported() {
				continue
			}
			headers = append(headers, field.Name)
			fieldIndices = append(fieldIndices, i)
		}
		return headers, fieldIndices, nil
	}

	for _, fieldName := range fields {
		field, ok := structType.FieldByName(fieldName)
		if !ok || !field.IsExported() {
			return nil, nil, fmt.Errorf("field %q not found in struct %s", fieldName, structType.Name())
		}
		headers = append(headers, fieldName)
		fieldIndices = append(fieldIndices, field.Index[0])
	}
	return headers, fieldIndices, nil
}

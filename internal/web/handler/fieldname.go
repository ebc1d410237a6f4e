package handler

import (
	"reflect"
	"strings"
)

// fieldName reports a struct field by its json name, falling back to the form name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}

		if name != "" {
			return name
		}
	}

	return f.Name
}

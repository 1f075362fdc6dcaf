package validation

import (
	"reflect"
	"strings"
)

// jsonTagName reports struct fields under their JSON names.
func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}

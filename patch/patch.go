// Package patch implements the partial-update merge used by all profile and
// catalog PUT handlers: request structs declare optional fields as pointers,
// and Fields collects only the fields actually present in the request body.
package patch

import (
	"reflect"
	"strings"
)

// Fields walks a patch struct and returns a column→value map containing the
// dereferenced value of every non-nil pointer field. Column names come from
// the field's json tag. Non-pointer fields are ignored.
func Fields(p interface{}) map[string]interface{} {
	out := map[string]interface{}{}

	v := reflect.ValueOf(p)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return out
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		out[name] = fv.Elem().Interface()
	}
	return out
}

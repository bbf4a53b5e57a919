package fmeaskema

import (
	"reflect"
	"strings"
)

// TagName is the struct tag read by the binding helpers.
const TagName = "fmeaskema"

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key used by the DSL.
// Priority: fmeaskema:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if name, ok := tagOption(sf, "name"); ok {
		return name
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if i == 0 {
				return sf.Name
			}
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// IsExtrasField reports whether sf is tagged fmeaskema:"extras". Such a field
// must be a map[string]any and receives keys not declared by the schema.
func IsExtrasField(sf reflect.StructField) bool {
	_, ok := tagOption(sf, "extras")
	return ok
}

func tagOption(sf reflect.StructField, name string) (string, bool) {
	gt := sf.Tag.Get(TagName)
	if gt == "" {
		return "", false
	}
	for _, p := range strings.Split(gt, ",") {
		p = strings.TrimSpace(p)
		if p == name {
			return "", true
		}
		if v, ok := strings.CutPrefix(p, name+"="); ok {
			return v, true
		}
	}
	return "", false
}

package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Unmarshal populates dst from r according to struct tags.
//
// dst must be a non-nil pointer to a struct, or to a pointer to a struct.
// Supported tags, tried in this order:
//
//	path:"name"    value of r.PathValue(name)
//	query:"name"   URL query parameter
//	header:"Name"  request header (canonicalized)
//
// A tag value of "-" skips the field, as do untagged and unexported fields.
// Fields may be strings, bools, integers, or slices of those; a slice field
// receives every value of a repeated query parameter or header.
//
// Values that fail to parse produce a 400 EndpointError. Programming errors
// such as a non-struct dst or an unsupported field type produce a 500.
func Unmarshal(r *http.Request, dst any) error {
	if r == nil {
		return Error(http.StatusInternalServerError, "", errors.New("endpoint: decode: nil request"))
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return Error(http.StatusInternalServerError, "", errors.New("endpoint: decode: dst must be a non-nil pointer"))
	}

	root := v.Elem()
	if root.Kind() == reflect.Pointer {
		if root.IsNil() {
			root.Set(reflect.New(root.Type().Elem()))
		}
		root = root.Elem()
	}
	if root.Kind() != reflect.Struct {
		return Error(http.StatusInternalServerError, "", errors.New("endpoint: decode: dst must point to a struct (or pointer to struct)"))
	}
	if root.NumField() == 0 {
		return nil
	}

	var query map[string][]string
	if r.URL != nil {
		query = r.URL.Query()
	}

	t := root.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		values, name, found := lookup(r, query, sf)
		if !found {
			continue
		}
		if err := setField(root.Field(i), values); err != nil {
			var ee *EndpointError
			if errors.As(err, &ee) {
				return err
			}
			return Error(http.StatusBadRequest, fmt.Sprintf("invalid value for %q", name), err)
		}
	}
	return nil
}

// lookup returns the raw values for a field from the first tagged source
// that has any.
func lookup(r *http.Request, query map[string][]string, sf reflect.StructField) ([]string, string, bool) {
	if name, ok := tagName(sf, "path"); ok {
		if v := r.PathValue(name); v != "" {
			return []string{v}, name, true
		}
	}
	if name, ok := tagName(sf, "query"); ok {
		if vs := query[name]; len(vs) > 0 {
			return vs, name, true
		}
	}
	if name, ok := tagName(sf, "header"); ok {
		if vs := r.Header.Values(name); len(vs) > 0 {
			return vs, name, true
		}
	}
	return nil, "", false
}

func tagName(sf reflect.StructField, source string) (string, bool) {
	tag, ok := sf.Tag.Lookup(source)
	if !ok {
		return "", false
	}
	name := strings.TrimSpace(strings.Split(tag, ",")[0])
	if name == "-" {
		return "", false
	}
	if name == "" {
		name = strings.ToLower(sf.Name)
	}
	return name, true
}

func setField(fv reflect.Value, values []string) error {
	if fv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(fv.Type(), len(values), len(values))
		for i, s := range values {
			if err := setScalar(out.Index(i), s); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil
	}
	return setScalar(fv, values[0])
}

func setScalar(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	default:
		return Error(http.StatusInternalServerError, "", fmt.Errorf("endpoint: decode: unsupported field type %s", fv.Type()))
	}
	return nil
}

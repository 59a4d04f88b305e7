package ghsearch

import (
	"encoding/json"
	"reflect"
	"strconv"

	eng "github.com/him0/swift-Sample-GitHubSearch-2016/internal/engine"
)

// Field decodes the required value at key into T.
//
// T may be a Decodable record, a slice or string-keyed map of decodable
// types, a pointer (null becomes nil), a scalar (string, bool, any int, uint or
// float width, or named types of those), Object, []any or any.
func Field[T any](obj Object, key string) (T, error) {
	var zero T
	raw, ok := obj[key]
	if !ok {
		return zero, missing(key)
	}
	var out T
	if err := decodeInto(reflect.ValueOf(&out).Elem(), key, raw); err != nil {
		return zero, rebase(err, key, key, raw)
	}
	return out, nil
}

// Optional decodes the value at key into T, returning nil when the key is
// absent or null. A present value of the wrong type is still an error.
func Optional[T any](obj Object, key string) (*T, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, nil
	}
	var out T
	if err := decodeInto(reflect.ValueOf(&out).Elem(), key, raw); err != nil {
		return nil, rebase(err, key, key, raw)
	}
	return &out, nil
}

// FieldWith decodes the required value at key through c.
func FieldWith[T any](obj Object, key string, c Converter[T]) (T, error) {
	var zero T
	raw, ok := obj[key]
	if !ok {
		return zero, missing(key)
	}
	if raw == nil {
		return zero, rebase(TypeMismatch(key, nil, typeName(reflect.TypeOf((*T)(nil)).Elem())), key, key, raw)
	}
	out, err := c.Convert(key, raw)
	if err != nil {
		return zero, rebase(err, key, key, raw)
	}
	return out, nil
}

// OptionalWith decodes the value at key through c, returning nil when the key
// is absent or null.
func OptionalWith[T any](obj Object, key string, c Converter[T]) (*T, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, nil
	}
	out, err := c.Convert(key, raw)
	if err != nil {
		return nil, rebase(err, key, key, raw)
	}
	return &out, nil
}

// Decode decodes a whole JSON value into T. Top-level arrays decode when T is
// a slice.
func Decode[T any](v any) (T, error) {
	var zero, out T
	if err := decodeInto(reflect.ValueOf(&out).Elem(), "", v); err != nil {
		if _, ok := AsDecodeError(err); !ok {
			err = Unexpected("", v, err.Error())
		}
		return zero, err
	}
	return out, nil
}

// Unmarshal parses data and decodes it into T.
func Unmarshal[T any](data []byte, opts ...ParseOpt) (T, error) {
	v, err := Parse(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](v)
}

func missing(key string) *DecodeError {
	e := MissingKey(key)
	e.Path = eng.JoinPointer("", key)
	return e
}

// decodeInto writes raw into rv. rv is only assigned after the whole subtree
// decoded, so a failure leaves it untouched.
func decodeInto(rv reflect.Value, key string, raw any) error {
	t := rv.Type()
	if isDecodable(t) {
		obj, ok := asObject(raw)
		if !ok {
			return TypeMismatch(key, raw, typeName(t))
		}
		p := reflect.New(t)
		if err := p.Interface().(Decodable).DecodeObject(obj); err != nil {
			return err
		}
		rv.Set(p.Elem())
		return nil
	}
	if t == numberType {
		n, ok := numberText(raw)
		if !ok {
			return TypeMismatch(key, raw, "number")
		}
		rv.SetString(n)
		return nil
	}
	if t == objectType {
		obj, ok := asObject(raw)
		if !ok {
			return TypeMismatch(key, raw, "object")
		}
		rv.Set(reflect.ValueOf(obj))
		return nil
	}

	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return Unsupported(key, typeName(t))
		}
		if raw != nil {
			rv.Set(reflect.ValueOf(raw))
		}
		return nil
	case reflect.Pointer:
		if raw == nil {
			rv.Set(reflect.Zero(t))
			return nil
		}
		p := reflect.New(t.Elem())
		if err := decodeInto(p.Elem(), key, raw); err != nil {
			return err
		}
		rv.Set(p)
		return nil
	case reflect.Slice:
		arr, ok := raw.([]any)
		if !ok {
			return TypeMismatch(key, raw, typeName(t))
		}
		s := reflect.MakeSlice(t, len(arr), len(arr))
		for i, el := range arr {
			if err := decodeInto(s.Index(i), key, el); err != nil {
				return rebase(err, strconv.Itoa(i), key, el)
			}
		}
		rv.Set(s)
		return nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Unsupported(key, typeName(t))
		}
		obj, ok := asObject(raw)
		if !ok {
			return TypeMismatch(key, raw, typeName(t))
		}
		m := reflect.MakeMapWithSize(t, len(obj))
		for _, k := range obj.Keys() {
			ev := reflect.New(t.Elem()).Elem()
			if err := decodeInto(ev, k, obj[k]); err != nil {
				return rebase(err, k, k, obj[k])
			}
			m.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), ev)
		}
		rv.Set(m)
		return nil
	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return TypeMismatch(key, raw, typeName(t))
		}
		rv.SetString(s)
		return nil
	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			return TypeMismatch(key, raw, typeName(t))
		}
		rv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := numberText(raw)
		if !ok {
			return TypeMismatch(key, raw, typeName(t))
		}
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil || rv.OverflowInt(i) {
			return TypeMismatch(key, raw, typeName(t))
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := numberText(raw)
		if !ok {
			return TypeMismatch(key, raw, typeName(t))
		}
		u, err := strconv.ParseUint(n, 10, 64)
		if err != nil || rv.OverflowUint(u) {
			return TypeMismatch(key, raw, typeName(t))
		}
		rv.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		n, ok := numberText(raw)
		if !ok {
			return TypeMismatch(key, raw, typeName(t))
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || rv.OverflowFloat(f) {
			return TypeMismatch(key, raw, typeName(t))
		}
		rv.SetFloat(f)
		return nil
	}
	return Unsupported(key, typeName(t))
}

var numberType = reflect.TypeOf((*json.Number)(nil)).Elem()

func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		if t.PkgPath() == "" {
			return "string"
		}
	case reflect.Bool:
		if t.PkgPath() == "" {
			return "boolean"
		}
	case reflect.Slice:
		return "array of " + typeName(t.Elem())
	case reflect.Pointer:
		return typeName(t.Elem())
	}
	return t.String()
}

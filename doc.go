// Package ghsearch decodes JSON API responses into typed records.
//
// The package provides:
//
// - A JSON value tree (Object, []any, json.Number, string, bool, nil) built by Parse
// - Typed accessors (Field, Optional, FieldWith, OptionalWith) with presence and type rules
// - The Decodable capability for records that construct themselves from an Object
// - Pluggable Converters for values needing custom parsing (see package codec)
// - A single error type, DecodeError, naming the failing key, path and raw value
//
// Design policy:
//   - A decode aborts on the first failing field and never returns a partial record.
//   - Absent and null are equivalent for optional fields; a present value of the
//     wrong type is always an error.
//   - Endpoints live under endpoint/, transport under transport/, API records under github/.
//
// Typical usage:
//
//	type Owner struct{ Login string }
//
//	func (o *Owner) DecodeObject(obj ghsearch.Object) (err error) {
//	    o.Login, err = ghsearch.Field[string](obj, "login")
//	    return err
//	}
//
//	owner, err := ghsearch.Unmarshal[Owner](data)
//	if de, ok := ghsearch.AsDecodeError(err); ok {
//	    log.Printf("%s at %s", de.Code, de.Pointer())
//	}
package ghsearch

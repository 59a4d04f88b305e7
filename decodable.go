package ghsearch

import "reflect"

// Decodable is implemented (on a pointer receiver) by records that construct
// themselves from a JSON object. Implementations extract fields in schema
// order through Field/Optional/FieldWith/OptionalWith and return the first
// error unchanged.
//
//	func (r *Repo) DecodeObject(obj ghsearch.Object) (err error) {
//	    if r.ID, err = ghsearch.Field[int64](obj, "id"); err != nil {
//	        return err
//	    }
//	    r.Description, err = ghsearch.Optional[string](obj, "description")
//	    return err
//	}
//
// The receiver is always a fresh zero value; the accessor only publishes it
// when DecodeObject returns nil.
type Decodable interface {
	DecodeObject(obj Object) error
}

// DecodeFunc decodes one raw JSON value into T.
type DecodeFunc[T any] func(v any) (T, error)

var (
	decodableType = reflect.TypeOf((*Decodable)(nil)).Elem()
	objectType    = reflect.TypeOf((*Object)(nil)).Elem()
)

func isDecodable(t reflect.Type) bool {
	return t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(decodableType)
}

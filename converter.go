package ghsearch

// Converter turns one raw JSON value into T. key is the object key the value
// was read from and should be carried into any error.
//
// Converters report malformed values with Unexpected and wrong raw kinds with
// TypeMismatch. Any other error is reported as unexpected_value with the
// error kept as Cause.
type Converter[T any] interface {
	Convert(key string, raw any) (T, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc[T any] func(key string, raw any) (T, error)

func (f ConverterFunc[T]) Convert(key string, raw any) (T, error) { return f(key, raw) }

package codec

import (
	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
)

// Identity returns a Converter applying the accessor's default decoding for T.
// It is mostly useful as the base of Check.
func Identity[T any]() ghsearch.Converter[T] {
	return ghsearch.ConverterFunc[T](func(key string, raw any) (T, error) {
		v, err := ghsearch.Decode[T](raw)
		if err != nil {
			if de, ok := ghsearch.AsDecodeError(err); ok && de.Key == "" {
				keyed := *de
				keyed.Key = key
				return v, &keyed
			}
		}
		return v, err
	})
}

// Check wraps c with a semantic validation. When ok rejects the converted
// value, an unexpected_value error carrying msg is returned.
func Check[T any](c ghsearch.Converter[T], msg string, ok func(T) bool) ghsearch.Converter[T] {
	return ghsearch.ConverterFunc[T](func(key string, raw any) (T, error) {
		v, err := c.Convert(key, raw)
		if err != nil {
			return v, err
		}
		if !ok(v) {
			var zero T
			return zero, ghsearch.Unexpected(key, raw, msg)
		}
		return v, nil
	})
}

// OneOf accepts only the listed values.
func OneOf[T comparable](c ghsearch.Converter[T], allowed ...T) ghsearch.Converter[T] {
	set := make(map[T]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return Check(c, "value is not one of the allowed values", func(v T) bool {
		_, ok := set[v]
		return ok
	})
}

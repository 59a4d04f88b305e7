package codec

import (
	"time"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
)

// RFC3339 returns a Converter for RFC3339 timestamps. Fractional seconds and
// offsets are accepted; the result keeps the parsed offset.
func RFC3339() ghsearch.Converter[time.Time] { return rfc3339Converter{} }

type rfc3339Converter struct{}

func (rfc3339Converter) Convert(key string, raw any) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, ghsearch.TypeMismatch(key, raw, "RFC3339 string")
	}
	t, err := parseRFC3339(s)
	if err != nil {
		return time.Time{}, &ghsearch.DecodeError{
			Code:    ghsearch.CodeUnexpectedValue,
			Key:     key,
			Value:   s,
			Message: "invalid RFC3339 time " + quote(s),
			Cause:   err,
		}
	}
	return t, nil
}

// FormatRFC3339 renders t in UTC with trailing fractional zeros trimmed, the
// canonical form accepted back by RFC3339.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// Package codec provides ghsearch.Converter implementations for values whose
// JSON representation is not a direct primitive match.
package codec

import (
	"strconv"
	"time"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
)

// GitHubTimeLayout is the API's timestamp pattern: UTC, no fractional seconds,
// literal Z.
const GitHubTimeLayout = "2006-01-02T15:04:05Z"

// Layout returns a Converter parsing strings with a fixed time layout. Values
// without zone information are interpreted in loc (UTC when nil).
func Layout(layout string, loc *time.Location) ghsearch.Converter[time.Time] {
	if loc == nil {
		loc = time.UTC
	}
	return layoutConverter{layout: layout, loc: loc}
}

// GitHubTime converts the API's timestamp strings, e.g.
// "2016-01-02T03:04:05Z". Input must match the layout exactly, so fractional
// seconds are rejected.
func GitHubTime() ghsearch.Converter[time.Time] {
	return layoutConverter{layout: GitHubTimeLayout, loc: time.UTC, exact: true}
}

type layoutConverter struct {
	layout string
	loc    *time.Location
	exact  bool
}

func (c layoutConverter) Convert(key string, raw any) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, ghsearch.TypeMismatch(key, raw, "date string")
	}
	t, err := time.ParseInLocation(c.layout, s, c.loc)
	if err != nil {
		return time.Time{}, &ghsearch.DecodeError{
			Code:    ghsearch.CodeUnexpectedValue,
			Key:     key,
			Value:   s,
			Message: "date " + quote(s) + " does not match layout " + quote(c.layout),
			Cause:   err,
		}
	}
	if c.exact && t.Format(c.layout) != s {
		return time.Time{}, ghsearch.Unexpected(key, s, "date "+quote(s)+" does not match layout "+quote(c.layout))
	}
	return t, nil
}

func quote(s string) string { return strconv.Quote(s) }

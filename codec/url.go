package codec

import (
	"net/url"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
)

// URL converts absolute URL strings into *url.URL.
func URL() ghsearch.Converter[*url.URL] {
	return ghsearch.ConverterFunc[*url.URL](func(key string, raw any) (*url.URL, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, ghsearch.TypeMismatch(key, raw, "URL string")
		}
		u, err := url.Parse(s)
		if err != nil {
			return nil, &ghsearch.DecodeError{Code: ghsearch.CodeUnexpectedValue, Key: key, Value: s, Message: "malformed URL " + quote(s), Cause: err}
		}
		if !u.IsAbs() || u.Host == "" {
			return nil, ghsearch.Unexpected(key, s, "URL "+quote(s)+" is not absolute")
		}
		return u, nil
	})
}

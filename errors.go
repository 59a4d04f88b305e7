package ghsearch

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/him0/swift-Sample-GitHubSearch-2016/i18n"
	eng "github.com/him0/swift-Sample-GitHubSearch-2016/internal/engine"
)

// Decode error codes.
const (
	CodeMissingKey      = "missing_key"
	CodeTypeMismatch    = "type_mismatch"
	CodeUnexpectedValue = "unexpected_value"
	CodeUnsupportedType = "unsupported_type"
	CodeInvalidJSON     = "invalid_json"
)

// Sentinels for errors.Is; they match any DecodeError with the same code.
var (
	ErrMissingKey      = &DecodeError{Code: CodeMissingKey}
	ErrTypeMismatch    = &DecodeError{Code: CodeTypeMismatch}
	ErrUnexpectedValue = &DecodeError{Code: CodeUnexpectedValue}
	ErrUnsupportedType = &DecodeError{Code: CodeUnsupportedType}
	ErrInvalidJSON     = &DecodeError{Code: CodeInvalidJSON}
)

// DecodeError describes the single field that aborted a decode.
type DecodeError struct {
	Code string
	// Key is the object key being decoded when the failure happened. Empty for
	// top-level values.
	Key string
	// Path is the JSON Pointer of the failing value relative to the decoded
	// document ("" means the root).
	Path string
	// Value is the offending raw JSON value.
	Value any
	// Expected names the requested target type for type_mismatch and
	// unsupported_type.
	Expected string
	// Message is free text, usually supplied by a Converter.
	Message string
	Cause   error
}

// MissingKey reports a required key absent from its object.
func MissingKey(key string) *DecodeError {
	return &DecodeError{Code: CodeMissingKey, Key: key}
}

// TypeMismatch reports a present value of the wrong raw kind.
func TypeMismatch(key string, value any, expected string) *DecodeError {
	return &DecodeError{Code: CodeTypeMismatch, Key: key, Value: value, Expected: expected}
}

// Unexpected reports a value of the right kind that failed a semantic check.
func Unexpected(key string, value any, msg string) *DecodeError {
	return &DecodeError{Code: CodeUnexpectedValue, Key: key, Value: value, Message: msg}
}

// Unsupported reports a target type without a decoding strategy.
func Unsupported(key string, expected string) *DecodeError {
	return &DecodeError{Code: CodeUnsupportedType, Key: key, Expected: expected}
}

// InvalidJSON reports a payload that could not be parsed.
func InvalidJSON(cause error) *DecodeError {
	e := &DecodeError{Code: CodeInvalidJSON, Cause: cause}
	var v *eng.Violation
	if errors.As(cause, &v) {
		e.Path = v.Path
		e.Message = v.Message
	}
	return e
}

func (e *DecodeError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Code)
	b.WriteString(" at ")
	b.WriteString(e.Pointer())
	b.WriteString(": ")
	b.WriteString(e.message())
	switch e.Code {
	case CodeTypeMismatch, CodeUnexpectedValue:
		fmt.Fprintf(b, " (value=%s)", describeValue(e.Value))
	case CodeInvalidJSON:
		if e.Cause != nil && e.Message == "" {
			fmt.Fprintf(b, " (%v)", e.Cause)
		}
	}
	return b.String()
}

func (e *DecodeError) message() string {
	if e.Message != "" {
		return e.Message
	}
	return i18n.T(e.Code, map[string]string{
		"key":      e.Key,
		"expected": e.Expected,
		"got":      kindOf(e.Value),
	})
}

// Pointer renders Path, using "/" for the root.
func (e *DecodeError) Pointer() string {
	if e.Path == "" {
		return "/"
	}
	return e.Path
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Is matches on Code so the package sentinels work with errors.Is.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Key == "" || t.Key == e.Key)
}

// AsDecodeError extracts a DecodeError from err using errors.As.
func AsDecodeError(err error) (*DecodeError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// rebase prefixes the error path with one reference token. Errors that are not
// DecodeErrors are reported as unexpected values carrying the original cause.
func rebase(err error, token string, key string, raw any) error {
	de, ok := AsDecodeError(err)
	if !ok {
		de = &DecodeError{Code: CodeUnexpectedValue, Key: key, Value: raw, Message: err.Error(), Cause: err}
	}
	out := *de
	out.Path = eng.JoinPointer("", token) + de.Path
	return &out
}

const maxValueRender = 64

func describeValue(v any) string {
	b, err := j.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	s := string(b)
	if len(s) > maxValueRender {
		s = s[:maxValueRender] + "..."
	}
	return s
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case Object, map[string]any:
		return "object"
	}
	if _, ok := numberText(v); ok {
		return "number"
	}
	return reflect.TypeOf(v).String()
}

package ghsearch

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"

	eng "github.com/him0/swift-Sample-GitHubSearch-2016/internal/engine"
	"github.com/him0/swift-Sample-GitHubSearch-2016/source/gojson"
)

// DefaultMaxDepth bounds nesting when ParseOpt.MaxDepth is zero.
const DefaultMaxDepth = 256

// ErrSyntax is the cause of an invalid_json error raised when the payload
// breaks JSON grammar.
var ErrSyntax = errors.New("malformed JSON")

// ErrPayloadTooLarge is the cause of an invalid_json error raised when input
// exceeds ParseOpt.MaxBytes.
var ErrPayloadTooLarge = errors.New("payload exceeds max bytes")

// ParseOpt bundles parsing limits. When several are passed the last one wins.
type ParseOpt struct {
	// MaxDepth caps nesting; zero means DefaultMaxDepth, negative disables it.
	MaxDepth int
	// MaxBytes caps the payload size; zero disables the check.
	MaxBytes int64
	// AllowDuplicateKeys keeps the last value of a repeated key instead of
	// failing.
	AllowDuplicateKeys bool
}

// Parse turns raw bytes into a JSON value tree (nil, bool, json.Number,
// string, []any or map[string]any). Every failure is an invalid_json
// DecodeError.
func Parse(data []byte, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, InvalidJSON(ErrPayloadTooLarge)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, InvalidJSON(io.ErrUnexpectedEOF)
	}
	if err := checkSyntax(data); err != nil {
		return nil, InvalidJSON(err)
	}
	return build(gojson.NewBytes(data), opt)
}

// ParseReader is Parse over an io.Reader. The input is buffered; MaxBytes is
// enforced while reading.
func ParseReader(r io.Reader, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, InvalidJSON(err)
	}
	return Parse(data, opt)
}

// checkSyntax validates the whole payload against JSON grammar. The goccy
// tokenizer only splits tokens, so literals like "tru" and missing or extra
// separators must be rejected here.
func checkSyntax(data []byte) error {
	if stdjson.Valid(data) {
		return nil
	}
	var scratch bytes.Buffer
	if err := stdjson.Compact(&scratch, data); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return ErrSyntax
}

func build(src eng.TokenSource, opt ParseOpt) (any, error) {
	depth := opt.MaxDepth
	switch {
	case depth == 0:
		depth = DefaultMaxDepth
	case depth < 0:
		depth = 0
	}
	v, err := eng.BuildValue(eng.Enforce(src, eng.Options{
		AllowDuplicateKeys: opt.AllowDuplicateKeys,
		MaxDepth:           depth,
	}))
	if err != nil {
		return nil, InvalidJSON(err)
	}
	return v, nil
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

package engine

import (
	"strconv"
	"strings"
)

// Options controls runtime enforcement while tokens are consumed.
type Options struct {
	// AllowDuplicateKeys disables duplicate key rejection inside objects.
	AllowDuplicateKeys bool
	// MaxDepth caps container nesting; 0 disables the check.
	MaxDepth int
}

// Violation codes reported through *Violation.
const (
	ViolationDuplicateKey = "duplicate_key"
	ViolationMaxDepth     = "max_depth"
)

// Violation reports which enforcement rule rejected the input and where.
type Violation struct {
	Code    string
	Path    string // JSON Pointer of the offending token.
	Message string
}

func (v *Violation) Error() string { return v.Message + " at " + v.Path }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// Enforce wraps inner so that duplicate keys and excessive depth are rejected
// as soon as the offending token is read.
func Enforce(inner TokenSource, opt Options) TokenSource {
	if opt.AllowDuplicateKeys && opt.MaxDepth == 0 {
		return inner
	}
	return &enforcingSource{inner: inner, opt: opt}
}

type enforcingSource struct {
	inner TokenSource
	opt   Options
	stack []frame
}

func (e *enforcingSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	path := e.pathFor(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, &Violation{Code: ViolationMaxDepth, Path: pointer(path), Message: "max depth " + strconv.Itoa(e.opt.MaxDepth) + " exceeded"}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if _, dup := top.keys[tok.String]; dup && !e.opt.AllowDuplicateKeys {
					return Token{}, &Violation{Code: ViolationDuplicateKey, Path: pointer(path), Message: "key '" + tok.String + "' duplicated"}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	default:
		e.valueDone()
	}
	return tok, nil
}

// valueDone marks the pending key of the enclosing object as consumed.
func (e *enforcingSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingSource) pathFor(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return JoinPointer(top.path, tok.String)
	case KindEndObject, KindEndArray:
		return top.path
	}
	if top.kind == kindArray {
		p := JoinPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	if !top.expectingKey {
		return JoinPointer(top.path, top.pendingKey)
	}
	return top.path
}

func (e *enforcingSource) Location() int64 { return e.inner.Location() }

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// JoinPointer appends one RFC 6901 reference token to base.
func JoinPointer(base, token string) string {
	if base == "/" {
		base = ""
	}
	return base + "/" + pointerEscaper.Replace(token)
}

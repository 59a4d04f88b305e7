package ghsearch_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
)

func TestParse_Tree(t *testing.T) {
	v, err := ghsearch.Parse([]byte(`{"a":[1,"x",true,null,{"b":2.5}]}`))
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	m := v.(map[string]any)
	arr := m["a"].([]any)
	if len(arr) != 5 || arr[0] != json.Number("1") || arr[1] != "x" || arr[2] != true || arr[3] != nil {
		t.Fatalf("unexpected tree: %#v", arr)
	}
	if arr[4].(map[string]any)["b"] != json.Number("2.5") {
		t.Fatalf("unexpected nested object: %#v", arr[4])
	}
}

func TestParse_LargeIntegersKeepPrecision(t *testing.T) {
	obj, err := ghsearch.Unmarshal[ghsearch.Object]([]byte(`{"id": 9007199254740993}`))
	if err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	id, err := ghsearch.Field[int64](obj, "id")
	if err != nil || id != 9007199254740993 {
		t.Fatalf("precision lost: %d %v", id, err)
	}
}

func TestParse_DuplicateKey(t *testing.T) {
	_, err := ghsearch.Parse([]byte(`[{"a":1,"a":2}]`))
	de, ok := ghsearch.AsDecodeError(err)
	if !ok || de.Code != ghsearch.CodeInvalidJSON {
		t.Fatalf("expected invalid_json, got %v", err)
	}
	if de.Path != "/0/a" {
		t.Fatalf("expected path /0/a, got %q", de.Path)
	}

	v, err := ghsearch.Parse([]byte(`{"a":1,"a":2}`), ghsearch.ParseOpt{AllowDuplicateKeys: true})
	if err != nil || v.(map[string]any)["a"] != json.Number("2") {
		t.Fatalf("duplicates allowed should keep the last value: %v %v", v, err)
	}
}

func TestParse_MaxDepth(t *testing.T) {
	deep := strings.Repeat("[", 5) + strings.Repeat("]", 5)
	if _, err := ghsearch.Parse([]byte(deep), ghsearch.ParseOpt{MaxDepth: 4}); !errors.Is(err, ghsearch.ErrInvalidJSON) {
		t.Fatalf("expected invalid_json for depth, got %v", err)
	}
	if _, err := ghsearch.Parse([]byte(deep), ghsearch.ParseOpt{MaxDepth: 5}); err != nil {
		t.Fatalf("depth 5 should pass: %v", err)
	}
	tooDeep := strings.Repeat("[", ghsearch.DefaultMaxDepth+1) + strings.Repeat("]", ghsearch.DefaultMaxDepth+1)
	if _, err := ghsearch.Parse([]byte(tooDeep)); err == nil {
		t.Fatalf("default depth limit should apply")
	}
	if _, err := ghsearch.Parse([]byte(tooDeep), ghsearch.ParseOpt{MaxDepth: -1}); err != nil {
		t.Fatalf("negative depth disables the limit: %v", err)
	}
}

func TestParse_MaxBytes(t *testing.T) {
	data := []byte(`{"total_count": 1}`)
	_, err := ghsearch.Parse(data, ghsearch.ParseOpt{MaxBytes: 4})
	if !errors.Is(err, ghsearch.ErrPayloadTooLarge) || !errors.Is(err, ghsearch.ErrInvalidJSON) {
		t.Fatalf("expected invalid_json caused by size, got %v", err)
	}
	if _, err := ghsearch.ParseReader(bytes.NewReader(data), ghsearch.ParseOpt{MaxBytes: 4}); !errors.Is(err, ghsearch.ErrPayloadTooLarge) {
		t.Fatalf("reader path should enforce size too, got %v", err)
	}
	if _, err := ghsearch.ParseReader(bytes.NewReader(data)); err != nil {
		t.Fatalf("reader parse err: %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{"", "   ", "{", "not json", `{} {}`} {
		if _, err := ghsearch.Parse([]byte(in)); !errors.Is(err, ghsearch.ErrInvalidJSON) {
			t.Fatalf("%q: expected invalid_json, got %v", in, err)
		}
	}
}

var grammarErrors = []string{
	`[1 2]`,
	`{"a":1,}`,
	`{"a" 1}`,
	`[1,,2]`,
	`[1,]`,
	`{,"a":1}`,
	`{"a":1 "b":2}`,
	`tru`,
	`nul`,
	`fals`,
	`{"a":tru}`,
}

func TestParse_GrammarErrors(t *testing.T) {
	for _, in := range grammarErrors {
		v, err := ghsearch.Parse([]byte(in))
		if !errors.Is(err, ghsearch.ErrInvalidJSON) || !errors.Is(err, ghsearch.ErrSyntax) {
			t.Fatalf("%q: expected invalid_json caused by syntax, got %v (value %#v)", in, err, v)
		}
		if v != nil {
			t.Fatalf("%q: no value should be returned, got %#v", in, v)
		}
	}
}

func TestParseReader_GrammarErrors(t *testing.T) {
	for _, in := range grammarErrors {
		if _, err := ghsearch.ParseReader(strings.NewReader(in)); !errors.Is(err, ghsearch.ErrSyntax) {
			t.Fatalf("%q: reader path should reject syntax, got %v", in, err)
		}
		if _, err := ghsearch.ParseReader(strings.NewReader(in), ghsearch.ParseOpt{MaxBytes: 1 << 10}); !errors.Is(err, ghsearch.ErrSyntax) {
			t.Fatalf("%q: bounded reader path should reject syntax, got %v", in, err)
		}
	}
}

func TestParse_ValidLiterals(t *testing.T) {
	for in, want := range map[string]any{"true": true, "false": false, "null": nil, ` "x" `: "x"} {
		v, err := ghsearch.Parse([]byte(in))
		if err != nil || v != want {
			t.Fatalf("%q: got %#v, %v", in, v, err)
		}
	}
}

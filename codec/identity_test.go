package codec_test

import (
	"encoding/json"
	"errors"
	"testing"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
	"github.com/him0/swift-Sample-GitHubSearch-2016/codec"
)

func TestIdentity_String(t *testing.T) {
	v, err := codec.Identity[string]().Convert("name", "swift")
	if err != nil || v != "swift" {
		t.Fatalf("convert err=%v v=%q", err, v)
	}
}

func TestIdentity_MismatchCarriesKey(t *testing.T) {
	_, err := codec.Identity[int]().Convert("size", "big")
	de, ok := ghsearch.AsDecodeError(err)
	if !ok || de.Code != ghsearch.CodeTypeMismatch || de.Key != "size" {
		t.Fatalf("expected keyed type_mismatch, got %v", err)
	}
}

func TestCheck_RejectsValue(t *testing.T) {
	positive := codec.Check(codec.Identity[int](), "must be positive", func(n int) bool { return n > 0 })

	if v, err := positive.Convert("page", json.Number("3")); err != nil || v != 3 {
		t.Fatalf("convert err=%v v=%d", err, v)
	}
	_, err := positive.Convert("page", json.Number("-1"))
	if !errors.Is(err, ghsearch.ErrUnexpectedValue) {
		t.Fatalf("expected unexpected_value, got %v", err)
	}
}

func TestOneOf(t *testing.T) {
	kind := codec.OneOf(codec.Identity[string](), "User", "Organization")
	obj := ghsearch.Object{"type": "Bot"}
	_, err := ghsearch.FieldWith(obj, "type", kind)
	de, ok := ghsearch.AsDecodeError(err)
	if !ok || de.Code != ghsearch.CodeUnexpectedValue || de.Path != "/type" {
		t.Fatalf("expected unexpected_value at /type, got %v", err)
	}
}

package codec

import (
	"errors"
	"testing"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
)

func TestURL_Convert(t *testing.T) {
	u, err := URL().Convert("html_url", "https://github.com/apple/swift")
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	if u.Host != "github.com" || u.Path != "/apple/swift" {
		t.Fatalf("unexpected url %v", u)
	}
}

func TestURL_Relative(t *testing.T) {
	_, err := URL().Convert("html_url", "/apple/swift")
	if !errors.Is(err, ghsearch.ErrUnexpectedValue) {
		t.Fatalf("expected unexpected_value, got %v", err)
	}
}

func TestURL_Malformed(t *testing.T) {
	_, err := URL().Convert("html_url", "http://[::1")
	if !errors.Is(err, ghsearch.ErrUnexpectedValue) {
		t.Fatalf("expected unexpected_value, got %v", err)
	}
}

func TestURL_WrongKind(t *testing.T) {
	if _, err := URL().Convert("html_url", 3); !errors.Is(err, ghsearch.ErrTypeMismatch) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
}

package codec

import (
	"errors"
	"testing"
	"time"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
)

func TestRFC3339_Convert_Basic(t *testing.T) {
	c := RFC3339()

	got, err := c.Convert("at", "2025-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	if out := FormatRFC3339(got); out != "2025-01-01T00:00:00Z" {
		t.Fatalf("roundtrip mismatch: %s", out)
	}
}

func TestRFC3339_Convert_FractionAndOffset(t *testing.T) {
	got, err := RFC3339().Convert("at", "2025-01-01T09:00:00.250+09:00")
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 250_000_000, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if out := FormatRFC3339(got); out != "2025-01-01T00:00:00.25Z" {
		t.Fatalf("canonical format mismatch: %s", out)
	}
}

func TestRFC3339_Convert_Malformed(t *testing.T) {
	_, err := RFC3339().Convert("at", "yesterday")
	de, ok := ghsearch.AsDecodeError(err)
	if !ok || de.Code != ghsearch.CodeUnexpectedValue || de.Key != "at" || de.Value != "yesterday" {
		t.Fatalf("expected unexpected_value for key at, got %v", err)
	}
	var perr *time.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected the time.ParseError as cause, got %v", err)
	}
}

func TestRFC3339_Convert_WrongKind(t *testing.T) {
	_, err := RFC3339().Convert("at", true)
	if !errors.Is(err, ghsearch.ErrTypeMismatch) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
}

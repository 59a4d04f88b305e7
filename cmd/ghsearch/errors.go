package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
	"github.com/him0/swift-Sample-GitHubSearch-2016/transport"
)

// userFriendlyError turns the two error families into one line for the
// terminal.
func userFriendlyError(err error) string {
	if de, ok := ghsearch.AsDecodeError(err); ok {
		return fmt.Sprintf("Decode error: the response did not match the expected schema: %s", de.Error())
	}
	if te, ok := transport.AsError(err); ok {
		detail := te.Message
		if detail == "" && te.Cause != nil {
			detail = te.Cause.Error()
		}
		switch {
		case te.StatusCode == 0 && errors.Is(te, context.Canceled):
			return "Interrupted."
		case te.StatusCode == 0:
			return fmt.Sprintf("Network error: could not reach %s: %s", te.URL, detail)
		case te.StatusCode == http.StatusUnauthorized:
			return "Authentication failed: check GHSEARCH_TOKEN."
		case te.StatusCode == http.StatusForbidden, te.StatusCode == http.StatusTooManyRequests:
			return fmt.Sprintf("Request refused (HTTP %d), possibly rate limited: %s", te.StatusCode, detail)
		case te.StatusCode == http.StatusNotFound:
			return "Not found."
		case te.StatusCode == http.StatusUnprocessableEntity:
			return fmt.Sprintf("The API rejected the query: %s", detail)
		default:
			if detail == "" {
				detail = te.Status
			}
			return fmt.Sprintf("API error (HTTP %d): %s", te.StatusCode, detail)
		}
	}
	return fmt.Sprintf("Error: %v", err)
}

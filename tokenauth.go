// Package tokenauth defines the contract between an authentication host and
// pluggable strategies that authenticate HTTP requests carrying a
// previously-obtained OAuth2 access token, along with the canonical profile
// type that strategies produce from a provider's proprietary profile
// document.
package tokenauth

import "net/http"

// Version is set at link time.
var Version = "unknown"

// Strategy authenticates an HTTP request. A host constructs a strategy once
// and then invokes Authenticate once per inbound request; the call blocks
// until one of the three terminal outcomes is decided. A strategy carries no
// per-request state so a single instance is shared across requests.
type Strategy interface {
	// Name identifies the strategy, e.g. by its provider.
	Name() string
	// Authenticate decides whether the request maps to a valid application
	// user, yielding exactly one of a success, failure or error result.
	Authenticate(r *http.Request) Result
}

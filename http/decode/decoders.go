// Package decode contains decoders for various HTTP artefacts.
package decode

import (
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
)

// Query schema decoder: caches structs, and safe for sharing.
var decoder *schema.Decoder

func init() {
	decoder = schema.NewDecoder()
	// Don't error if there are keys in the source map that are not present in
	// the destination struct.
	decoder.IgnoreUnknownKeys(true)
}

// Form decodes an HTTP request's POST form contents into dst.
func Form(dst any, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return decoder.Decode(dst, r.PostForm)
}

// Query unmarshals a query string (k1=v1&k2=v2...) into dst.
func Query(dst any, query url.Values) error {
	return decoder.Decode(dst, query)
}

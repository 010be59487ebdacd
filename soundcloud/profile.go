package soundcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/otterauth/tokenauth"
	"github.com/otterauth/tokenauth/oauth"
)

// ProfileError is a failed profile fetch. When the provider's error document
// could be parsed, Message and StatusCode carry its diagnostics; otherwise
// Message is a fixed description and the transport error is retained as the
// underlying cause.
type ProfileError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *ProfileError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
}

func (e *ProfileError) Unwrap() error { return e.Err }

// providerError is the error document the SoundCloud API attaches to non-2xx
// responses.
type providerError struct {
	Errors []struct {
		ErrorMessage string `json:"error_message"`
	} `json:"errors"`
}

// Profile exchanges an access token for the user's normalized profile. A
// transport fault is wrapped as a *ProfileError, preserving the provider's
// diagnostics when its error document parses; a profile body that is not
// valid JSON is returned as the raw parse error, distinguishing an
// unparseable profile from a failed fetch. The same token always yields a
// structurally equal profile; nothing is cached or retried.
func (s *TokenStrategy) Profile(ctx context.Context, accessToken string) (*tokenauth.Profile, error) {
	body, err := s.client.Get(ctx, s.config.ProfileURL, accessToken)
	if err != nil {
		return nil, fetchError(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return newProfile(raw, body), nil
}

// fetchError wraps a transport error, extracting the provider's error
// message and status code when the attached error document parses, and
// degrading to a uniform wrap when it does not.
func fetchError(err error) error {
	var resp *oauth.ResponseError
	if errors.As(err, &resp) {
		var perr providerError
		if jsonErr := json.Unmarshal(resp.Body, &perr); jsonErr == nil && len(perr.Errors) > 0 && perr.Errors[0].ErrorMessage != "" {
			return &ProfileError{
				Message:    perr.Errors[0].ErrorMessage,
				StatusCode: resp.StatusCode,
				Err:        err,
			}
		}
	}
	return &ProfileError{Message: "failed to fetch user profile", Err: err}
}

// newProfile normalizes SoundCloud's proprietary profile JSON into the
// canonical shape.
func newProfile(raw map[string]any, body []byte) *tokenauth.Profile {
	profile := &tokenauth.Profile{
		Provider: Provider,
		ID:       stringify(raw["id"]),
		Emails:   []tokenauth.Email{},
		RawBody:  string(body),
		Raw:      raw,
	}
	if username, ok := raw["username"].(string); ok {
		profile.Username = username
	}
	// SoundCloud reports the full name in a single field; absent, the
	// display name and both name parts are empty strings rather than absent.
	if fullName, ok := raw["full_name"].(string); ok {
		profile.DisplayName = fullName
		profile.Name = splitName(fullName)
	}
	avatar, _ := raw["avatar_url"].(string)
	profile.Photos = []tokenauth.Photo{{Value: avatar}}
	return profile
}

// splitName splits a full name into given and family parts on the first
// whitespace run.
func splitName(fullName string) tokenauth.Name {
	i := strings.IndexFunc(fullName, unicode.IsSpace)
	if i < 0 {
		return tokenauth.Name{GivenName: fullName}
	}
	return tokenauth.Name{
		GivenName:  fullName[:i],
		FamilyName: strings.TrimLeftFunc(fullName[i:], unicode.IsSpace),
	}
}

// stringify renders the provider's user id as a string, whether the JSON
// carries it as a string or a number.
func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

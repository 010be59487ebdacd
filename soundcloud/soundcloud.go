// Package soundcloud authenticates HTTP requests carrying a SoundCloud OAuth2
// access token obtained out-of-band by the client, i.e. without the
// redirect-based authorization-code flow. The strategy exchanges the token
// for the user's SoundCloud profile, normalizes it into the canonical shape,
// and defers the decision of whether the identity maps to a valid application
// user to an application-supplied verify function.
package soundcloud

import (
	"context"
	"errors"
	"net/http"

	"github.com/otterauth/tokenauth"
	"github.com/otterauth/tokenauth/oauth"
	"golang.org/x/oauth2"
)

// Provider identifies SoundCloud in canonical profiles.
const Provider = "soundcloud"

// Default SoundCloud endpoints and request field names, applied when the
// corresponding Config fields are unset.
const (
	DefaultAuthURL    = "https://soundcloud.com/connect"
	DefaultTokenURL   = "https://api.soundcloud.com/oauth2/token"
	DefaultProfileURL = "https://api.soundcloud.com/me.json"

	DefaultAccessTokenField  = "access_token"
	DefaultRefreshTokenField = "refresh_token"
)

var ErrVerifyRequired = errors.New("token strategy requires a verify function")

type (
	// Config is configuration for the strategy. It is fixed once the strategy
	// is constructed.
	Config struct {
		ClientID     string
		ClientSecret string
		// AuthURL, TokenURL and ProfileURL override the default SoundCloud
		// endpoints, e.g. for tests.
		AuthURL    string
		TokenURL   string
		ProfileURL string
		// AccessTokenField and RefreshTokenField name the request parameters
		// the tokens are extracted from.
		AccessTokenField  string
		RefreshTokenField string
		// PassRequestToCallback includes the inbound request in the
		// Verification handed to the verify function.
		PassRequestToCallback bool
		SkipTLSVerification   bool
	}

	// VerifyFunc decides whether a verified SoundCloud identity maps to a
	// valid application user. Returning a non-nil error signals an internal
	// fault; returning a nil user rejects the identity, with info carrying
	// the reason; otherwise user is the authenticated subject and info any
	// auxiliary detail.
	VerifyFunc func(ctx context.Context, v Verification) (user any, info tokenauth.Info, err error)

	// Verification is the evidence handed to a VerifyFunc.
	Verification struct {
		// Request is nil unless the strategy was configured with
		// PassRequestToCallback.
		Request      *http.Request
		AccessToken  string
		RefreshToken string
		Profile      *tokenauth.Profile
	}

	// TokenStrategy implements tokenauth.Strategy for SoundCloud access
	// tokens. All state is fixed at construction; one instance is shared
	// across requests.
	TokenStrategy struct {
		config  Config
		verify  VerifyFunc
		client  transport
		sources []tokenSource
	}

	// transport performs an authorized GET against a provider endpoint,
	// implemented as an interface to permit swapping out for testing
	// purposes.
	transport interface {
		Get(ctx context.Context, url, accessToken string) ([]byte, error)
	}

	// tokenSource returns the value of the named parameter from one section
	// of the request, or "" when absent.
	tokenSource func(r *http.Request, name string) string
)

var _ tokenauth.Strategy = (*TokenStrategy)(nil)

// New constructs the strategy, applying defaults for unset config fields.
// The verify function is required.
func New(cfg Config, verify VerifyFunc) (*TokenStrategy, error) {
	if verify == nil {
		return nil, ErrVerifyRequired
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = DefaultProfileURL
	}
	if cfg.AccessTokenField == "" {
		cfg.AccessTokenField = DefaultAccessTokenField
	}
	if cfg.RefreshTokenField == "" {
		cfg.RefreshTokenField = DefaultRefreshTokenField
	}

	client := oauth.NewClient(oauth.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.AuthURL,
			TokenURL: cfg.TokenURL,
		},
		// the SoundCloud profile API expects bearer-style authorization
		// rather than a query parameter
		UseAuthorizationHeader: true,
		SkipTLSVerification:    cfg.SkipTLSVerification,
	})

	return &TokenStrategy{
		config:  cfg,
		verify:  verify,
		client:  client,
		sources: []tokenSource{bodyParam, queryParam},
	}, nil
}

func (s *TokenStrategy) Name() string { return Provider }

// Authenticate extracts the access token (and optional refresh token) from
// the request, exchanges it for the user's profile and hands the result to
// the verify function. It yields exactly one of three terminal outcomes: a
// missing access token or a rejection by verify is a failure; a profile-fetch
// fault or an error from verify is an error; otherwise success.
func (s *TokenStrategy) Authenticate(r *http.Request) tokenauth.Result {
	accessToken := s.param(r, s.config.AccessTokenField)
	refreshToken := s.param(r, s.config.RefreshTokenField)

	if accessToken == "" {
		return tokenauth.Failure(tokenauth.Info{
			"message": "You should provide " + s.config.AccessTokenField,
		})
	}

	profile, err := s.Profile(r.Context(), accessToken)
	if err != nil {
		return tokenauth.Error(err)
	}

	v := Verification{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      profile,
	}
	if s.config.PassRequestToCallback {
		v.Request = r
	}

	user, info, err := s.verify(r.Context(), v)
	if err != nil {
		return tokenauth.Error(err)
	}
	if user == nil {
		return tokenauth.Failure(info)
	}
	return tokenauth.Success(user, info)
}

// param returns the first non-empty value for name, consulting request
// sections in fixed precedence order: body first, then query.
func (s *TokenStrategy) param(r *http.Request, name string) string {
	for _, source := range s.sources {
		if v := source(r, name); v != "" {
			return v
		}
	}
	return ""
}

func bodyParam(r *http.Request, name string) string {
	if err := r.ParseForm(); err != nil {
		return ""
	}
	return r.PostForm.Get(name)
}

func queryParam(r *http.Request, name string) string {
	return r.URL.Query().Get(name)
}

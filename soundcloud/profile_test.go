package soundcloud

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/otterauth/tokenauth"
	"github.com/otterauth/tokenauth/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStrategy_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes provider profile", func(t *testing.T) {
		body := `{"id":"3207","username":"jwagener","full_name":"Johannes Wagener","avatar_url":"http://example/img.jpg"}`
		s := newTestStrategy(t, Config{}, acceptAll, &fakeTransport{body: []byte(body)})

		profile, err := s.Profile(ctx, "T")
		require.NoError(t, err)

		assert.Equal(t, "soundcloud", profile.Provider)
		assert.Equal(t, "3207", profile.ID)
		assert.Equal(t, "jwagener", profile.Username)
		assert.Equal(t, "Johannes Wagener", profile.DisplayName)
		assert.Equal(t, "Johannes", profile.Name.GivenName)
		assert.Equal(t, "Wagener", profile.Name.FamilyName)
		assert.Equal(t, []tokenauth.Email{}, profile.Emails)
		assert.Equal(t, []tokenauth.Photo{{Value: "http://example/img.jpg"}}, profile.Photos)
		assert.Equal(t, body, profile.RawBody)
		assert.Equal(t, "jwagener", profile.Raw["username"])
	})

	t.Run("numeric id is stringified", func(t *testing.T) {
		s := newTestStrategy(t, Config{}, acceptAll, &fakeTransport{body: []byte(`{"id":3207}`)})

		profile, err := s.Profile(ctx, "T")
		require.NoError(t, err)
		assert.Equal(t, "3207", profile.ID)
	})

	t.Run("absent full name yields empty name parts", func(t *testing.T) {
		s := newTestStrategy(t, Config{}, acceptAll, &fakeTransport{body: []byte(`{"id":"3207"}`)})

		profile, err := s.Profile(ctx, "T")
		require.NoError(t, err)
		assert.Equal(t, "", profile.DisplayName)
		assert.Equal(t, "", profile.Name.GivenName)
		assert.Equal(t, "", profile.Name.FamilyName)
	})

	t.Run("multi-part family name", func(t *testing.T) {
		s := newTestStrategy(t, Config{}, acceptAll, &fakeTransport{body: []byte(`{"full_name":"Ludwig van Beethoven"}`)})

		profile, err := s.Profile(ctx, "T")
		require.NoError(t, err)
		assert.Equal(t, "Ludwig", profile.Name.GivenName)
		assert.Equal(t, "van Beethoven", profile.Name.FamilyName)
	})

	t.Run("malformed profile surfaces raw parse error", func(t *testing.T) {
		s := newTestStrategy(t, Config{}, acceptAll, &fakeTransport{body: []byte("not a JSON")})

		profile, err := s.Profile(ctx, "T")
		assert.Nil(t, profile)

		var syntaxErr *json.SyntaxError
		assert.ErrorAs(t, err, &syntaxErr)

		var profileErr *ProfileError
		assert.False(t, errors.As(err, &profileErr))
	})

	t.Run("fetch error preserves provider diagnostics", func(t *testing.T) {
		respErr := &oauth.ResponseError{
			StatusCode: http.StatusUnauthorized,
			Body:       []byte(`{"errors":[{"error_message":"401 - invalid token"}]}`),
		}
		s := newTestStrategy(t, Config{}, acceptAll, &fakeTransport{err: respErr})

		_, err := s.Profile(ctx, "T")

		var profileErr *ProfileError
		require.ErrorAs(t, err, &profileErr)
		assert.Equal(t, "401 - invalid token", profileErr.Message)
		assert.Equal(t, http.StatusUnauthorized, profileErr.StatusCode)
		assert.ErrorIs(t, err, respErr)
	})

	t.Run("malformed error body degrades to uniform wrap", func(t *testing.T) {
		respErr := &oauth.ResponseError{StatusCode: http.StatusBadGateway, Body: []byte("<html>oops</html>")}
		s := newTestStrategy(t, Config{}, acceptAll, &fakeTransport{err: respErr})

		_, err := s.Profile(ctx, "T")

		var profileErr *ProfileError
		require.ErrorAs(t, err, &profileErr)
		assert.Equal(t, "failed to fetch user profile", profileErr.Message)
		assert.Zero(t, profileErr.StatusCode)
	})

	t.Run("plain transport error gets uniform wrap", func(t *testing.T) {
		cause := errors.New("connection refused")
		s := newTestStrategy(t, Config{}, acceptAll, &fakeTransport{err: cause})

		_, err := s.Profile(ctx, "T")

		var profileErr *ProfileError
		require.ErrorAs(t, err, &profileErr)
		assert.Equal(t, "failed to fetch user profile", profileErr.Message)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("same token yields structurally equal profiles", func(t *testing.T) {
		s := newTestStrategy(t, Config{}, acceptAll, &fakeTransport{body: []byte(profileJSON)})

		first, err := s.Profile(ctx, "T")
		require.NoError(t, err)
		second, err := s.Profile(ctx, "T")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

package tokenauth

// Profile is the canonical, provider-agnostic identity record a strategy
// derives from the provider's profile document. It is constructed fresh per
// authentication attempt and handed to the verify callback; nothing is
// persisted by the strategy.
type Profile struct {
	// Provider names the identity provider the profile came from.
	Provider string
	// ID is the provider's unique identifier for the user.
	ID          string
	Username    string
	DisplayName string
	Name        Name
	// Emails is always non-nil; providers that do not expose email addresses
	// yield an empty slice.
	Emails []Email
	Photos []Photo
	// RawBody is the provider's response exactly as received.
	RawBody string
	// Raw is the parsed provider JSON.
	Raw map[string]any
}

// Name holds the parts of a user's full name.
type Name struct {
	GivenName  string
	FamilyName string
}

type Email struct {
	Value string
}

// Photo is a URL to a user's avatar or similar image.
type Photo struct {
	Value string
}

package domain

import "time"

// Identity is the signed-in user, or a guest. Guests never sync.
type Identity struct {
	Guest     bool
	UserID    string
	Email     string
	SecretRef string
	// MergedAt records the last guest to authenticated merge for UserID.
	MergedAt time.Time
}

func GuestIdentity() Identity {
	return Identity{Guest: true}
}

func (i Identity) Authenticated() bool {
	return !i.Guest && i.UserID != ""
}

// NeedsMerge reports whether local data has not yet been merged with the
// remote store for this user.
func (i Identity) NeedsMerge() bool {
	return i.Authenticated() && i.MergedAt.IsZero()
}

func (i Identity) Label() string {
	if !i.Authenticated() {
		return "guest"
	}
	if i.Email != "" {
		return i.Email
	}
	return i.UserID
}

// TokenSecretRef is the secret store key holding a user's OAuth token.
func TokenSecretRef(userID string) string {
	return "studypomo/" + userID + "/oauth_token"
}

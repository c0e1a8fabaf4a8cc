package gotrue

// ============================================================================
// Identifier Types
// ============================================================================

// EmailOrPhone is a discriminated principal identifier: exactly one of email
// or phone is set. Construct values with Email or Phone.
type EmailOrPhone struct {
	email string
	phone string
}

// Email builds an identifier from an email address.
func Email(address string) EmailOrPhone {
	return EmailOrPhone{email: address}
}

// Phone builds an identifier from a phone number.
func Phone(number string) EmailOrPhone {
	return EmailOrPhone{phone: number}
}

// IsEmail reports whether the identifier carries an email address.
func (e EmailOrPhone) IsEmail() bool { return e.email != "" }

// IsPhone reports whether the identifier carries a phone number.
func (e EmailOrPhone) IsPhone() bool { return e.phone != "" }

// apply writes the identifier into a JSON request body under the field name
// the service expects ("email" or "phone").
func (e EmailOrPhone) apply(body map[string]any) {
	if e.IsEmail() {
		body["email"] = e.email
		return
	}
	body["phone"] = e.phone
}

// ============================================================================
// Session Types
// ============================================================================

// Session represents one authenticated credential grant held by the client.
// A valid Session always carries a non-empty access token; the refresh token
// may be absent, in which case the session cannot be silently refreshed.
type Session struct {
	// AccessToken is the JWT used to authenticate requests on behalf of the user
	AccessToken string `json:"access_token"`

	// TokenType is the token scheme, typically "bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the advertised lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in,omitempty"`

	// RefreshToken is the opaque token used to obtain a new session; optional
	RefreshToken string `json:"refresh_token,omitempty"`

	// ProviderToken is the third-party provider token, present only for
	// provider-based sign-ins
	ProviderToken string `json:"provider_token,omitempty"`

	// User is the snapshot of the authenticated account, when the service
	// includes one in the grant
	User *User `json:"user,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

// UserIdentity is a linked third-party identity on a user account.
type UserIdentity struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	IdentityData map[string]any `json:"identity_data"`
	Provider     string         `json:"provider"`
	CreatedAt    string         `json:"created_at"`
	LastSignInAt string         `json:"last_sign_in_at"`
	UpdatedAt    string         `json:"updated_at,omitempty"`
}

// User is a snapshot of the remote account's profile. It is a value object:
// the server remains authoritative and the client never mutates one.
type User struct {
	// ID is the unique identifier of the account
	ID string `json:"id"`

	// AppMetadata and UserMetadata are opaque key-value payloads owned by the
	// application and the user respectively
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`

	// Aud is the audience tag the account was issued for
	Aud string `json:"aud"`

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	// NewEmail is set while an email change is pending confirmation
	NewEmail string `json:"new_email,omitempty"`

	ActionLink string `json:"action_link,omitempty"`
	Role       string `json:"role,omitempty"`

	// Timestamps are RFC3339 strings as returned by the service; optional
	// ones are empty when absent.
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at,omitempty"`
	ConfirmedAt        string `json:"confirmed_at,omitempty"`
	EmailConfirmedAt   string `json:"email_confirmed_at,omitempty"`
	PhoneConfirmedAt   string `json:"phone_confirmed_at,omitempty"`
	ConfirmationSentAt string `json:"confirmation_sent_at,omitempty"`
	RecoverySentAt     string `json:"recovery_sent_at,omitempty"`
	EmailChangeSentAt  string `json:"email_change_sent_at,omitempty"`
	InvitedAt          string `json:"invited_at,omitempty"`
	LastSignInAt       string `json:"last_sign_in_at,omitempty"`

	// Identities lists linked third-party identities, in server order
	Identities []UserIdentity `json:"identities,omitempty"`
}

// UserList is a page of users as returned by the service.
type UserList struct {
	Users []User `json:"users"`
}

// UserAttributes is the mutation request for the held account. All fields are
// optional; an all-absent value is legal and a server-side no-op.
type UserAttributes struct {
	Email            string         `json:"email,omitempty"`
	Phone            string         `json:"phone,omitempty"`
	Password         string         `json:"password,omitempty"`
	EmailChangeToken string         `json:"email_change_token,omitempty"`
	Data             map[string]any `json:"data,omitempty"`
}

// UserUpdate echoes the account state relevant to an update request.
type UserUpdate struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	NewEmail          string `json:"new_email"`
	EmailChangeSentAt string `json:"email_change_sent_at"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// ============================================================================
// Operation Results
// ============================================================================

// SignUpResult is the decoded outcome of a sign-up. Either field may be nil:
// accounts requiring confirmation are created without a session grant.
type SignUpResult struct {
	Session *Session
	User    *User
}

// SignInResult is the decoded outcome of a sign-in. URL and Provider are
// populated only for third-party provider redirect flows.
type SignInResult struct {
	Session  *Session
	User     *User
	URL      string
	Provider Provider
}

// ============================================================================
// Providers
// ============================================================================

// Provider identifies a third-party OAuth provider. Values are passed through
// to the service opaquely; the redirect flow itself is not handled here.
type Provider string

const (
	ProviderApple     Provider = "apple"
	ProviderAzure     Provider = "azure"
	ProviderBitBucket Provider = "bitbucket"
	ProviderDiscord   Provider = "discord"
	ProviderFacebook  Provider = "facebook"
	ProviderGithub    Provider = "github"
	ProviderGitlab    Provider = "gitlab"
	ProviderGoogle    Provider = "google"
	ProviderKeycloak  Provider = "keycloak"
	ProviderLinkedIn  Provider = "linkedin"
	ProviderNotion    Provider = "notion"
	ProviderSlack     Provider = "slack"
	ProviderSpotify   Provider = "spotify"
	ProviderTwitch    Provider = "twitch"
	ProviderTwitter   Provider = "twitter"
	ProviderWorkos    Provider = "workos"
)

// String returns the wire form of the provider name.
func (p Provider) String() string { return string(p) }

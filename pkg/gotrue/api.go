package gotrue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// API is the HTTP gateway to the remote identity service. It performs one
// request/response exchange per operation and returns either a decoded
// success payload or a transport error (*APIError for structured HTTP
// failures). It holds no authentication state; see Client for that.
type API struct {
	BaseURL    string
	HTTPClient *http.Client

	// Limiter, when set, gates every outbound request. Identity services
	// conventionally rate-limit authentication endpoints aggressively, so a
	// client that fans out can self-throttle instead of burning attempts.
	// Nil disables client-side limiting.
	Limiter *rate.Limiter
}

// NewAPI creates a gateway bound to a single base URL of the remote service.
func NewAPI(baseURL string) *API {
	return &API{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// gateway is the operation set the Client consumes. *API is the production
// implementation; tests substitute stubs.
type gateway interface {
	SignUp(ctx context.Context, id EmailOrPhone, password string) (json.RawMessage, error)
	SignIn(ctx context.Context, id EmailOrPhone, password string) (json.RawMessage, error)
	SendOTP(ctx context.Context, id EmailOrPhone, createUser *bool) error
	VerifyOTP(ctx context.Context, params any) error
	SignOut(ctx context.Context, accessToken string) error
	ResetPasswordForEmail(ctx context.Context, email string) error
	UpdateUser(ctx context.Context, attrs UserAttributes, accessToken string) (*UserUpdate, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*User, error)
}

var _ gateway = (*API)(nil)

// SignUp registers a new account. The raw payload is returned undecoded
// because the service answers with either a session grant or a bare user
// snapshot depending on whether confirmation is required.
func (a *API) SignUp(ctx context.Context, id EmailOrPhone, password string) (json.RawMessage, error) {
	body := map[string]any{"password": password}
	id.apply(body)

	return a.doRequest(ctx, http.MethodPost, "/signup", body, "")
}

// SignIn authenticates with an identifier/password pair via the password
// grant. As with SignUp, the raw payload is returned undecoded.
func (a *API) SignIn(ctx context.Context, id EmailOrPhone, password string) (json.RawMessage, error) {
	body := map[string]any{"password": password}
	id.apply(body)

	return a.doRequest(ctx, http.MethodPost, "/token?grant_type=password", body, "")
}

// SendOTP asks the service to issue a one-time passcode to the identifier.
// createUser, when non-nil, tells the service whether to create an account
// for an unknown identifier; nil leaves the service default in place.
func (a *API) SendOTP(ctx context.Context, id EmailOrPhone, createUser *bool) error {
	body := map[string]any{}
	id.apply(body)
	if createUser != nil {
		body["create_user"] = *createUser
	}

	_, err := a.doRequest(ctx, http.MethodPost, "/otp", body, "")
	return err
}

// VerifyOTP submits a verification payload. params may be any
// JSON-serializable value; the service accepts several verification shapes
// (signup, sms, recovery, ...) and this gateway does not constrain them.
func (a *API) VerifyOTP(ctx context.Context, params any) error {
	_, err := a.doRequest(ctx, http.MethodPost, "/verify", params, "")
	return err
}

// SignOut revokes the grant behind the given access token.
func (a *API) SignOut(ctx context.Context, accessToken string) error {
	_, err := a.doRequest(ctx, http.MethodPost, "/logout", nil, accessToken)
	return err
}

// ResetPasswordForEmail sends a password recovery email.
func (a *API) ResetPasswordForEmail(ctx context.Context, email string) error {
	body := map[string]any{"email": email}

	_, err := a.doRequest(ctx, http.MethodPost, "/recover", body, "")
	return err
}

// UpdateUser mutates attributes of the account behind the access token.
func (a *API) UpdateUser(ctx context.Context, attrs UserAttributes, accessToken string) (*UserUpdate, error) {
	data, err := a.doRequest(ctx, http.MethodPut, "/user", attrs, accessToken)
	if err != nil {
		return nil, err
	}

	var update UserUpdate
	if err := decodeJSON(data, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// RefreshAccessToken exchanges a refresh token for a fresh session grant.
func (a *API) RefreshAccessToken(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]any{"refresh_token": refreshToken}

	data, err := a.doRequest(ctx, http.MethodPost, "/token?grant_type=refresh_token", body, "")
	if err != nil {
		return nil, err
	}

	var session Session
	if err := decodeJSON(data, &session); err != nil {
		return nil, err
	}
	// A grant without an access token is malformed; adopting it would leave
	// the client holding an unusable session.
	if session.AccessToken == "" {
		return nil, fmt.Errorf("malformed grant: missing access_token")
	}
	return &session, nil
}

// GetUser fetches the account snapshot behind the access token.
func (a *API) GetUser(ctx context.Context, accessToken string) (*User, error) {
	data, err := a.doRequest(ctx, http.MethodGet, "/user", nil, accessToken)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProviderSignInURL builds the authorize URL for a third-party provider
// sign-in. No request is made; the caller redirects the user agent and
// handles the callback itself.
func (a *API) ProviderSignInURL(provider Provider, redirectTo string, scopes []string) string {
	params := url.Values{}
	params.Set("provider", provider.String())
	if redirectTo != "" {
		params.Set("redirect_to", redirectTo)
	}
	if len(scopes) > 0 {
		params.Set("scopes", strings.Join(scopes, " "))
	}

	return a.url("/authorize") + "?" + params.Encode()
}

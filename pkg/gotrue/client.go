package gotrue

import (
	"context"
	"encoding/json"
	"net/http"
)

// Client is the session manager for the identity service: the single
// authority over what credential state this client currently holds and the
// only component that mutates it. Every operation performs at most one
// gateway round-trip and classifies its failure into the closed error
// taxonomy in errors.go.
//
// A Client is designed for single-owner, sequential use: one logical user per
// instance, no internal locking. Callers that share an instance across
// goroutines must serialize access externally, or hold one Client per user.
type Client struct {
	api gateway

	currentSession *Session
	currentUser    *User
}

// NewClient creates a client bound to a single base URL of the remote
// identity service. It starts with no held session.
func NewClient(baseURL string) *Client {
	return &Client{api: NewAPI(baseURL)}
}

// SignUp registers a new account. Any held session is cleared before the
// attempt so old credentials never leak into a new one. On success the
// decoded session (if the grant includes one) becomes the held session;
// accounts requiring confirmation yield a user snapshot without a session.
//
// Returns ErrAlreadyRegistered when the service rejects the identifier with
// HTTP 400, ErrInternal for every other failure.
func (c *Client) SignUp(ctx context.Context, id EmailOrPhone, password string) (*SignUpResult, error) {
	c.removeSession()

	raw, err := c.api.SignUp(ctx, id, password)
	if err != nil {
		return nil, classify(err, http.StatusBadRequest, ErrAlreadyRegistered)
	}

	session, user := decodeSessionAndUser(raw)
	c.currentSession = session

	return &SignUpResult{Session: session, User: user}, nil
}

// SignIn authenticates with an identifier/password pair. Any held session is
// cleared before the attempt. On success the returned session becomes the
// held session.
//
// Returns ErrInvalidCredentials when the service rejects the pair with
// HTTP 400, ErrInternal for every other failure.
func (c *Client) SignIn(ctx context.Context, id EmailOrPhone, password string) (*SignInResult, error) {
	c.removeSession()

	raw, err := c.api.SignIn(ctx, id, password)
	if err != nil {
		return nil, classify(err, http.StatusBadRequest, ErrInvalidCredentials)
	}

	session, user := decodeSessionAndUser(raw)
	c.currentSession = session

	return &SignInResult{Session: session, User: user}, nil
}

// SendOTP asks the service to issue a one-time passcode to the identifier.
// It never touches the held session. createUser, when non-nil, overrides the
// service's default behavior for unknown identifiers.
//
// Returns ErrAccountNotFound when the service answers HTTP 422, ErrInternal
// for every other failure.
func (c *Client) SendOTP(ctx context.Context, id EmailOrPhone, createUser *bool) error {
	if err := c.api.SendOTP(ctx, id, createUser); err != nil {
		return classify(err, http.StatusUnprocessableEntity, ErrAccountNotFound)
	}
	return nil
}

// VerifyOTP submits a verification payload (any JSON-serializable value).
// The held session is cleared before the attempt, and no session is adopted
// even on success: a failed or passed verification always leaves the client
// unauthenticated, and callers establish a session separately.
//
// Returns ErrInvalidToken when the service rejects the token with HTTP 400,
// ErrInternal for every other failure.
func (c *Client) VerifyOTP(ctx context.Context, params any) error {
	c.removeSession()

	if err := c.api.VerifyOTP(ctx, params); err != nil {
		return classify(err, http.StatusBadRequest, ErrInvalidToken)
	}
	return nil
}

// SignOut revokes the held session's grant and clears the held session. With
// no held session it fails immediately with ErrNotAuthenticated, without
// contacting the service; any transport failure maps to ErrInternal.
func (c *Client) SignOut(ctx context.Context) error {
	if c.currentSession == nil {
		return ErrNotAuthenticated
	}

	if err := c.api.SignOut(ctx, c.currentSession.AccessToken); err != nil {
		return ErrInternal
	}

	c.removeSession()
	return nil
}

// ResetPasswordForEmail sends a password recovery email. It never touches the
// held session. Any failure maps to ErrAccountNotFound; the service's status
// code is deliberately not distinguished here.
func (c *Client) ResetPasswordForEmail(ctx context.Context, email string) error {
	if err := c.api.ResetPasswordForEmail(ctx, email); err != nil {
		return ErrAccountNotFound
	}
	return nil
}

// UpdateUser mutates attributes of the account behind the held session. With
// no held session it fails immediately with ErrNotAuthenticated.
//
// Returns ErrAccountNotFound when the service answers HTTP 400, ErrInternal
// for every other failure.
func (c *Client) UpdateUser(ctx context.Context, attrs UserAttributes) (*UserUpdate, error) {
	if c.currentSession == nil {
		return nil, ErrNotAuthenticated
	}

	update, err := c.api.UpdateUser(ctx, attrs, c.currentSession.AccessToken)
	if err != nil {
		return nil, classify(err, http.StatusBadRequest, ErrAccountNotFound)
	}
	return update, nil
}

// RefreshSession exchanges the held session's refresh token for a fresh
// grant, replacing the held session wholesale (no merging with the old one).
// With no held session it fails with ErrNotAuthenticated; with a held session
// that carries no refresh token it fails with ErrMissingRefreshToken. Both
// preconditions short-circuit before any network call. Any transport failure
// maps to ErrInternal.
func (c *Client) RefreshSession(ctx context.Context) (*Session, error) {
	if c.currentSession == nil {
		return nil, ErrNotAuthenticated
	}
	if c.currentSession.RefreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	session, err := c.api.RefreshAccessToken(ctx, c.currentSession.RefreshToken)
	if err != nil {
		return nil, ErrInternal
	}

	c.currentSession = session
	return session, nil
}

// SetSession adopts a session from a known refresh token, usable with no
// prior held session. An empty token fails with ErrNotAuthenticated before
// any network call. On success the new session replaces any held one
// wholesale; transport failures map to ErrInternal.
func (c *Client) SetSession(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, ErrNotAuthenticated
	}

	session, err := c.api.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrInternal
	}

	c.currentSession = session
	return session, nil
}

// FetchUser retrieves the account snapshot behind the held session and
// refreshes the cached current user. With no held session it fails with
// ErrNotAuthenticated; any transport failure maps to ErrInternal.
func (c *Client) FetchUser(ctx context.Context) (*User, error) {
	if c.currentSession == nil {
		return nil, ErrNotAuthenticated
	}

	user, err := c.api.GetUser(ctx, c.currentSession.AccessToken)
	if err != nil {
		return nil, ErrInternal
	}

	c.currentUser = user
	return user, nil
}

// CurrentSession returns a shallow copy of the held session, or nil when
// none is held. It never contacts the service. The embedded User pointer
// (and its metadata maps) still aliases the held state: treat the result as
// read-only.
func (c *Client) CurrentSession() *Session {
	if c.currentSession == nil {
		return nil
	}
	session := *c.currentSession
	return &session
}

// CurrentUser returns a shallow copy of the cached user snapshot, or nil
// when none is cached. The cache is best-effort and may lag the server; it
// never contacts the service. Metadata maps and the identities slice still
// alias the cache: treat the result as read-only.
func (c *Client) CurrentUser() *User {
	if c.currentUser == nil {
		return nil
	}
	user := *c.currentUser
	return &user
}

func (c *Client) removeSession() {
	c.currentSession = nil
}

// decodeSessionAndUser interprets a sign-up/sign-in payload, which carries a
// session grant, a bare user snapshot, or both. A session is only valid with
// a non-empty access token; a user snapshot needs an identifier. The payload
// nests the user inside a grant, so the snapshot is taken from whichever
// location has it.
func decodeSessionAndUser(raw json.RawMessage) (*Session, *User) {
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil || session.AccessToken == "" {
		var user User
		if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
			return nil, nil
		}
		return nil, &user
	}

	user := session.User
	if user == nil {
		var bare User
		if err := json.Unmarshal(raw, &bare); err == nil && bare.ID != "" {
			user = &bare
		}
	}

	return &session, user
}

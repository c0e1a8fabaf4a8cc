/*
Package gotrue is a client for a GoTrue-compatible identity service.

# Overview

The package is organized around two types:

  - API: the HTTP gateway — one method per remote operation, no held state
  - Client: the session manager — owns the current session and user cache,
    enforces preconditions, and classifies transport failures into a small
    closed set of domain errors

Most applications only need a Client:

	client := gotrue.NewClient("http://localhost:9998")

	res, err := client.SignUp(ctx, gotrue.Email("email@example.com"), "Abcd1234!")
	if err != nil {
		// errors.Is(err, gotrue.ErrAlreadyRegistered), ...
	}

	session := client.CurrentSession()

# Session lifecycle

A Client holds at most one session. Sign-up, sign-in, and OTP verification
clear any held session before contacting the service, so a failed attempt
never leaves a mixture of old and new credentials. A successful refresh or
re-authentication replaces the session wholesale, and a confirmed sign-out
clears it.

Token expiry is the caller's responsibility: there is no background refresh
loop. Use Session.IsExpired to decide when to call Client.RefreshSession, and
Client.SetSession to adopt a session from a refresh token persisted elsewhere
(persistence across process restarts is also the caller's concern).

# Errors

Every failed Client operation returns one value from the closed taxonomy
(ErrAlreadyRegistered, ErrInvalidCredentials, ErrAccountNotFound,
ErrInvalidToken, ErrNotAuthenticated, ErrMissingRefreshToken, ErrInternal),
matched with errors.Is. The mapping is intentionally coarse: one or two HTTP
statuses are distinguished per operation and everything else is ErrInternal.
Raw transport errors surface only from API methods, as *APIError.

# Concurrency

A Client is a single mutable-state value with no internal locking, meant for
one logical user used sequentially. Hold one Client per user, or serialize
access externally.
*/
package gotrue

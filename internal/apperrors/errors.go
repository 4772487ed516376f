package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidCredentials indicates a bad username/password pair, or an invalid,
// expired or otherwise unverifiable token presented where a valid one was required.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidScope indicates a structurally valid token used for the wrong purpose
// (e.g. a refresh token presented where an access token was expected).
var ErrInvalidScope = errors.New("invalid scope for token")

// ErrUnprocessableToken indicates a malformed or unverifiable email confirmation token.
// Kept distinct from ErrInvalidCredentials so handlers can answer 422 instead of 401.
var ErrUnprocessableToken = errors.New("invalid token for email verification")

// ErrEmailNotConfirmed indicates a login attempt on an account whose email address
// has not been confirmed yet.
var ErrEmailNotConfirmed = errors.New("email not confirmed")

// ErrTokenReuseDetected indicates that a presented refresh token no longer matches
// the stored one. The stored token is revoked as a side effect before this surfaces.
var ErrTokenReuseDetected = errors.New("refresh token reuse detected")

// ErrUsernameExists indicates a signup attempt with a username that is already taken.
var ErrUsernameExists = errors.New("account already exists")

// ErrEmailExists indicates a signup attempt with an email address already in use.
var ErrEmailExists = errors.New("email already in use")

// ErrUnauthenticated indicates that the subject of an otherwise valid token no
// longer resolves to a user in the store.
var ErrUnauthenticated = errors.New("could not validate credentials")

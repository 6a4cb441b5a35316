// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// admin panel's HTTP handlers and middleware.
//
// All Msg* constants are human-readable strings written into the "msg" field
// of HTTP response bodies. Keeping them in one place keeps the wording
// consistent throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body is not a
	// single JSON object of the expected shape.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgMissingToken is returned when a protected route is called without a
	// "Bearer <token>" Authorization header.
	MsgMissingToken = "missing or malformed Authorization header"

	// MsgInvalidLoginPassword is returned for an unknown username and for a
	// wrong password alike.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgAccountLocked is returned while an account is inside its lockout
	// window. The Retry-After header carries the remaining seconds.
	MsgAccountLocked = "account is locked, try again later"

	// MsgWeakPassword is returned with the list of failed password rules.
	MsgWeakPassword = "password does not meet the policy"

	// MsgLoginAlreadyExists is returned when the username or email is taken.
	MsgLoginAlreadyExists = "username or email already in use"

	// MsgAccessDenied is returned when the caller's role does not allow the
	// operation.
	MsgAccessDenied = "access denied"

	// MsgTokenIsExpired is returned when a bearer token is well-formed but
	// past its expiry.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsInvalid is returned for a bad signature, a malformed token or
	// a token of the wrong type.
	MsgTokenIsInvalid = "token is invalid"

	// MsgUserNotFound is returned when a valid token names a user that no
	// longer exists.
	MsgUserNotFound = "user no longer exists"

	// MsgServiceUnavailable is returned when the user store cannot be reached.
	MsgServiceUnavailable = "service temporarily unavailable"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgNotFound is returned for unknown routes and unsupported methods.
	MsgNotFound = "not found"

	MsgUserCreated     = "user created"
	MsgPasswordChanged = "password changed"
)

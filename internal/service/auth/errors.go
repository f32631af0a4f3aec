package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf or iat in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or badly signed
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrWrongTokenType indicates an access token was used where a refresh token
	// was expected, or the other way round
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrWeakSecret indicates the signing secret is shorter than MinSecretLength
	ErrWeakSecret = errors.New("jwt secret is too short")

	// ErrPasswordMismatch indicates the password does not match the stored hash
	ErrPasswordMismatch = errors.New("password does not match")
)

package domain

import "time"

// TokenPair is the result of a successful sign-in or refresh. Refresh is
// empty when a refresh did not rotate the refresh token.
type TokenPair struct {
	Access    string
	Refresh   string
	ExpiresIn time.Duration
}

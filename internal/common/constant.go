// Package common contains shared constants and sentinel errors used across
// QuoteKeeper components.
package common

// AuthorizationHeaderName carries the bearer access token on outbound
// requests to the blob service.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

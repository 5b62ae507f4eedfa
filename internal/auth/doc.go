// Package auth manages the credential lifecycle for the Google APIs.
//
// Two credential variants exist behind the Provider interface: an OAuth
// variant that exchanges a long-lived refresh token for short-lived access
// tokens, and a service-account variant that mints tokens from a private
// signing key via self-signed assertion. The variant is selected once at
// startup based on which configuration fields are present.
//
// The OAuth variant additionally carries a Keepalive timer that forces a
// token exchange every 30 minutes so the refresh token never goes dormant.
package auth

// Package auth_tools exposes the credential troubleshooting surface:
// auth_status reports token health without a network call, auth_refresh
// forces an exchange and reports the outcome without ever raising.
package auth_tools

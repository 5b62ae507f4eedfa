// Package drive is a stateless facade over the Google Drive API.
//
// Each method builds a single request using the credential provider the
// client was constructed with and projects the response into explicit result
// structs at the boundary. Listing filters are built conjunctively: clauses
// are ANDed, never ORed, and an absent parameter omits its clause entirely.
package drive

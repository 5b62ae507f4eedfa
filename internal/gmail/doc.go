// Package gmail is a stateless facade over the Gmail API.
//
// Each method builds a single request against the remote API using the
// credential provider the client was constructed with, and projects the
// response into explicit result structs at the boundary. No retries, no
// caching, no pagination beyond a single page-size parameter.
package gmail

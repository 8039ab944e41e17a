// Package acl is the anti-corruption layer between the dashboard and the
// remote YouQuote API.
//
// Wire DTOs stay unexported in this package. Everything that leaves it is a
// domain type or a domain error:
//
//   - [Gateway] sends every request once, refuses authenticated calls without a
//     token, and clears the session on 401/403
//   - [MapHTTPError] turns statuses and transport failures into domain errors
//   - [DecodeObject] and [DecodeList] enforce the documented response shapes;
//     a mismatch is [domain.ErrContract], never sniffed around
//   - [YouQuote] implements [ports.RemoteAPI]
//
// Status mapping:
//   - 401/403 → [domain.ErrUnauthorized] (session cleared first)
//   - 404 → [domain.ErrNotFound]
//   - 422 → [domain.ErrValidation] with every field message
//   - 429, 5xx, network, circuit open → [domain.ErrUnavailable]
//   - anything else → [domain.ErrRequest]
package acl

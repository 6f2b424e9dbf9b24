// Package services implements the client side of the Videoteka REST API.
//
// [Client] is the request gateway: the only component that issues network
// calls. It resolves the base address (a fixed local development address when
// none is configured), attaches the JSON content type and the bearer token,
// tags every request with an X-Request-ID, and normalizes error responses
// into [RequestError] values built from the backend's detail/message fields.
//
// The typed services wrap the gateway per API area:
//   - [AccountService] : registration, login, profile, avatar, password
//   - [CatalogService] : film listings, per-genre queries, admin operations
//   - [CollectionAPI] : cart and bookmark membership, one instance per kind
//
// None of the services retry, time out, or cancel beyond the caller's
// context; every user action maps to exactly one request attempt.
package services

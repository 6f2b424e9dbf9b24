// Package store persists and synchronizes the client's local state.
//
// [LocalStore] is a SQLite-backed key-value store playing the role the
// browser's localStorage plays for the web client: it holds the bearer token
// and the JSON-encoded cart/bookmarks snapshots under fixed keys, with
// last-write-wins semantics.
//
// [Session] owns the bearer token lifecycle and implements the gateway's
// token provider.
//
// [SyncStore] mirrors one server-owned membership list (cart or bookmarks)
// into local state. Local state changes only after the server acknowledges a
// mutation; a failed call leaves the mirror untouched. The two stores of a
// pair persist their snapshots together in a single transaction whenever
// either changes.
package store

// Package models defines the domain types shared by the Videoteka client.
//
// The package contains two categories of types:
//
// 1. Catalog records received from the backend:
//   - [Film] : Movie record as served by the /films and /genres endpoints
//   - [FlexString] : JSON field that tolerates string-or-number encodings
//
// 2. Collection state owned by the client:
//   - [CollectionItem] : Minimal projection of a film used to redisplay a
//     cart or bookmark entry without refetching
//   - [CollectionKind] : Parameterizes the two server-backed collections
//     (cart, bookmarks) that share one sync pattern
//   - [SortField] : Transient sort selection applied to the cached film list
//
// All types are plain values with no behavior beyond JSON decoding and
// display fallbacks; synchronization lives in the store package.
package models

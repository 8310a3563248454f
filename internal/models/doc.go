// Package models defines the movie records exchanged with the watch-list API and the display projection built from them.
//
// The package contains three categories of types:
//
// 1. Wire records: the two differently-shaped movie records the client receives
//   - [StoredMovie] : a movie persisted by the watch-list API (snake_case JSON)
//   - [SearchResultMovie] : a movie-database search hit (OMDb-style PascalCase JSON)
//
// 2. Request bodies: [MovieCreate] and [MovieUpdate], validated before they are sent.
//
// 3. Derived values, never persisted:
//   - [Movie] : a tagged variant holding exactly one of the wire records
//   - [NormalizedMovie] : the unified display shape produced by [Normalize]
//   - [Stats] : aggregate counts folded from a list of stored movies
package models

// package repositories provides the SQLite persistence layer for local client state.
//
// Movies are never stored locally; the watch-list API is the source of truth.
// The only persisted state is a small key/value table of UI preferences.
//
// # PreferenceRepository
//
// [PreferenceRepository] implements [preferences.Store] over the preferences table created by
// the embedded migrations in the shared package. Set is an upsert.
package repositories

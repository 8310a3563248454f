// Package stores holds the client-side state mirrored from the watch-list API.
//
// [Library] owns the stored list and [Search] owns the current query and its results.
// Both expose read-only getters and a Subscribe method; views re-read state through the
// getters whenever an [Event] arrives. Event delivery never blocks a store, so a slow
// subscriber may miss events but never sees stale state once it reads.
//
// Store operations do not return errors. Failures are logged and the previous state is kept.
package stores

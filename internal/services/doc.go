// Package services implements the typed REST client for the watch-list API.
//
// # MovieClient Interface
//
// Stores depend on [MovieClient] rather than the concrete [MovieService], so tests can swap in a stub.
//
// # Endpoints
//
// [MovieService] talks to the API under a configured base URL:
//   - GET /movies : the stored list
//   - POST /movies : add a movie ([models.MovieCreate] JSON body)
//   - PATCH /movies/{imdb_id} : update status and/or color (query parameters)
//   - DELETE /movies/{imdb_id} : remove a movie
//   - GET /search?query= : movie-database search
//
// Every request carries a fresh X-Request-ID.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrMovieNotFound] : 404 on update or delete
//   - [shared.ErrDecodeResponse] : body could not be decoded
//   - [shared.ErrInvalidInput] : request body failed validation
//
// There are no retries.
package services

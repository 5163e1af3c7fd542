// Package server provides the HTTP backend the moodtunes client talks to.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
// Route-level middleware ([RequestLogger], [JSONContentType]) wraps matched routes only.
// go-pkgz/rest middleware (app info headers, /ping, recoverer, throttle, size limit) wraps the whole router.
//
// # Endpoints
//
//   - POST /recommend {mood, timestamp} → {songs}
//   - GET /favorites → {favorites} in insertion order
//   - POST /add_favorite {title, artist, url, mood} → {message}, idempotent by url
//   - POST /delete_favorite {url} → {message}, 404 when the url is unknown
//   - GET /history?limit=N → {history}, most recent first
//
// Every failure responds with {"error": "..."}.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [FavoritesHandler] is one.
package server

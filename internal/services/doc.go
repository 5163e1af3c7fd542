// Package services talks to the recommendation backend and to the ZenQuotes API.
//
// # Transport
//
// [APIService] sends raw JSON requests and returns an [APIResponse] without judging the
// status code. The `api` CLI command uses it directly for debugging.
//
// # Recommender
//
// [Client] implements [Recommender] on top of [APIService]:
//   - POST /recommend {mood, timestamp} → {songs}
//   - POST /add_favorite {title, artist, url, mood} → {message}
//   - GET /favorites → {favorites}
//   - POST /delete_favorite {url} → {message}
//   - GET /history?limit=N → {history}
//
// # Errors
//
// Failures fall in two classes:
//   - transport or decode failures are returned as wrapped errors
//   - non-2xx responses become an [APIError] whose message is the body's error field,
//     or the operation's fallback text when the field is missing. [APIError] unwraps to
//     [shared.ErrAPIRequest].
//
// [Message] extracts the user-facing text from either class.
//
// # Quotes
//
// [QuoteService] requests one /quotes batch, then fills any shortfall with /random calls
// run through an errgroup with a concurrency limit. A [rate.Limiter] paces every request.
package services

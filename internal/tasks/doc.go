// Package tasks builds recommendations on the server side.
//
// # Recommendation Flow
//
// [RecommendEngine.Recommend] performs three steps:
//
//  1. Look up the songs for the mood in a [Catalog] (case-insensitive, unknown moods give no songs)
//  2. Attach one quote per song
//     - ask the [services.QuoteSource] for twice as many quotes as songs
//     - pad a short answer with [services.DefaultQuote]
//     - keep the first distinct quotes, top up with random picks, shuffle
//     - assign them to songs cyclically
//  3. Record the request through the optional [HistoryRecorder]
//
// Quote and history failures are logged but never fail the request.
//
// # Testing
//
// [EngineOpts] accepts Shuffle and Pick functions so quote assignment can be made deterministic.
package tasks

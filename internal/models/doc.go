// Package models defines domain entities and persistence interfaces for the moodtunes recommendation service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs matching the JSON wire contract
//   - [Song] : An ephemeral recommendation with an optional quote
//   - [Favorite] : A user-saved song keyed by its playback url
//   - [Mood] : A categorical tag from the fixed [Moods] set
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [FavoriteRecord] : A stored favorite with soft delete support
//   - [HistoryEntry] : A recorded recommendation request and its result
//
// All persistent entities implement the Model interface providing ID generation, timestamps, and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models

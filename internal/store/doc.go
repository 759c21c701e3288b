// Package store defines the persistence interfaces for AlgoDeck along with
// the error vocabulary and transaction helper shared by every
// implementation. The SQLite implementation lives in
// internal/platform/sqlite.
package store

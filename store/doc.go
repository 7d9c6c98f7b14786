// Package store persists the last good weather report per location and the
// saved location list in SQLite.
package store

// Package dismissals persists the set of purchase ids hidden from the
// reminder feed. It implements dismissal.Persistence over SQLite.
package dismissals

// Package client bootstraps local persistence for the warranty keeper CLI:
// it opens the SQLite database, applies the embedded goose migrations and
// wires the repositories.
package client

// Package cli provides the interactive warranty keeper command-line client.
//
// It wires configuration, the local SQLite store, the purchase and feed
// services and the reminder machinery, then runs a REPL. Two background
// loops run alongside it: the dispatcher, which prints due reminders as
// banners, and the day watcher, which re-applies the reminder rule when the
// calendar day changes.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or ctx is cancelled. See App, StartDayWatcher and runREPL for details.
package cli

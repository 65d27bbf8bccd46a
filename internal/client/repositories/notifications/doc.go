// Package notifications is the local pending-notification queue. The
// SQLite repository is the reminder sink the scheduler writes to
// (Schedule/Cancel/CancelAll) and the queue the dispatcher drains
// (Due/Cancel).
package notifications

// Package reminder turns warranty end dates into local notifications.
//
// # Scheduling
//
// Scheduler derives up to three reminders per purchase, 7, 3 and 1 days
// before the warranty ends, and pushes them to a Sink. Every reminder is
// identified by a deterministic key:
//
//	warranty_<leadDays>_<recordId>
//
// The same key is used to schedule and to cancel, so re-running the
// scheduler over unchanged input is idempotent. Returned purchases, lifetime
// warranties and reminders whose instant has already passed are never
// scheduled.
//
// The Scheduler keeps no state of its own; the Sink is the source of truth
// for what is pending. Sink failures are logged and swallowed.
//
// # Delivery
//
// Dispatcher polls a Queue for reminders that are due, hands each one to a
// Notifier and removes it from the queue once delivered.
package reminder

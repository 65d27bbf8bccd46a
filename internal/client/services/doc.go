// Package services implements the warranty keeper use cases on top of the
// repositories: the purchase collection (with reminder rescheduling on every
// change) and the reminder feed.
package services

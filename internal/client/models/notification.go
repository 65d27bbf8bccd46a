package models

import "time"

// Notification is a reminder waiting in the local pending queue.
type Notification struct {
	Key    string
	FireAt time.Time
	Title  string
	Body   string
}

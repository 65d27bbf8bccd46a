// Package models defines client-side data models used by the warranty keeper.
package models

import "time"

// Purchase is a tracked product together with its warranty terms.
// Status is never stored here; it is derived on every read (see package
// warranty).
type Purchase struct {
	// Id is an opaque, immutable identifier assigned at creation.
	Id string

	Name string
	Shop string

	// PurchaseDate is the calendar date the product was bought.
	PurchaseDate time.Time

	// WarrantyMonths is the warranty term. Ignored when IsLifetimeWarranty is set.
	WarrantyMonths int

	IsLifetimeWarranty bool

	// IsReturned only ever goes from false to true.
	IsReturned bool

	// Photo and AttachmentRef are opaque payloads with no effect on status.
	Photo         []byte
	AttachmentRef string
}

// NewPurchase carries user input for a purchase that does not exist yet.
type NewPurchase struct {
	Name               string
	Shop               string
	PurchaseDate       time.Time
	WarrantyMonths     int
	IsLifetimeWarranty bool
	Photo              []byte
	AttachmentRef      string
}

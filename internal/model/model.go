// Package model holds the rows the landing site writes.
//
// Both are flat, write-once records: they are inserted on a successful
// submission and never read, updated or deleted by this application.
package model

// Table names in the hosted store.
const (
	NewsletterTable = "newsletter_subscriptions"
	ContactTable    = "contacts"
)

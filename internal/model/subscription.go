package model

import "time"

// Subscription is one feed in the reading list. FolderID is nil for
// subscriptions that live at the top level of the exported OPML document.
type Subscription struct {
	ID              int64
	FolderID        *int64
	Title           string
	URL             string
	SiteURL         *string
	Description     *string
	LastRefreshedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

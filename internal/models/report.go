package model

import (
	"time"
)

// Report categories selectable in the submission form.
const (
	CategoryRoad          = "road"
	CategorySecurity      = "security"
	CategoryEnvironment   = "environment"
	CategoryPublicService = "public-service"
	CategoryOther         = "other"
)

// Report statuses. New reports always start as pending.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// Categories lists every valid report category.
var Categories = []string{
	CategoryRoad,
	CategorySecurity,
	CategoryEnvironment,
	CategoryPublicService,
	CategoryOther,
}

// Report is a citizen-submitted issue report.
type Report struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Status      string    `json:"status"` // pending, in-progress, resolved
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateReportInput is what the submission form provides. Owner, status and
// timestamps are assigned by the repository, never by the caller.
type CreateReportInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// UpdateReportInput carries the fields an update may touch. The identifier,
// owner and creation timestamp are deliberately absent so they can never be
// rewritten.
type UpdateReportInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Empty reports whether the update contains no fields at all.
func (u UpdateReportInput) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Category == nil && u.Status == nil
}

// ReportStats are the counts the dashboard derives from a report collection.
type ReportStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}

// StatsFor computes status counts over a snapshot of reports.
func StatsFor(reports []Report) ReportStats {
	stats := ReportStats{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case StatusPending:
			stats.Pending++
		case StatusInProgress:
			stats.InProgress++
		case StatusResolved:
			stats.Resolved++
		}
	}
	return stats
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

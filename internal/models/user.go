package model

import "time"

// User is the authenticated identity as seen by this client. It mirrors what
// the identity provider returns; the provider owns the record.
type User struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

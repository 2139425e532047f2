// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a local application user provisioned from an external identity.
// ExternalID is the stable identifier issued by the identity provider and
// is the join key between the session identity and the local record.
type User struct {
	ID         uuid.UUID // The unique identifier for the user.
	ExternalID string    // Stable id issued by the identity provider.
	Name       string    // Display name reported by the provider.
	Username   *string   // Chosen handle. Nil until the user picks one.
	Email      string    // Principal name / email used for provisioning lookups.
	Admin      bool      // Grants access to the admin dashboard.
	Disabled   bool      // Soft-disabled users are invisible to the application.
	CreatedAt  time.Time // Timestamp of when this user account was created.
	UpdatedAt  time.Time // Timestamp of the last modification to this user's data.
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the owner of trips. Only identity and display fields live here;
// credential and verification handling belong to a separate system.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

package models

import "time"

// User is the marketplace profile kept in sync with the identity
// provider's record after each sign-in.
type User struct {
	UID       string    `json:"uid,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	District  string    `json:"district,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Package models defines data models for the profile service.
package models

import "time"

// User represents an account loaded from the identity store. It is resolved
// fresh on every request and never cached across requests.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile represents a user profile. Exactly one profile exists per user;
// the avatar field holds the object-storage key, not a URL.
type Profile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Gender      string    `json:"gender"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Info        string    `json:"info"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProfile carries the normalized fields for a profile insert.
type NewProfile struct {
	UserID      int64
	FirstName   string
	LastName    string
	Gender      string
	DateOfBirth time.Time
	Info        string
	Avatar      string
}

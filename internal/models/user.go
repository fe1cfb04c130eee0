package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Trip struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	LaunchID  int       `json:"launch_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TripResult is the outcome of writing a single booking.
type TripResult struct {
	LaunchID int
	Err      error
}

type TripUpdateResponse struct {
	Success  bool      `json:"success"`
	Message  *string   `json:"message,omitempty"`
	Launches []*Launch `json:"launches"`
}

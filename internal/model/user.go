package model

import "time"

// User represents a stored user account. ProfileID and ListingID are loose
// references to the user's profile and listing documents; they are not
// reconciled transactionally with deletes.
type User struct {
	ID         string    `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	Password   string    `json:"-" db:"password"`
	Email      *string   `json:"email,omitempty" db:"email"`
	Token      *string   `json:"-" db:"token"`
	IsVerified bool      `json:"is_verified" db:"is_verified"`
	ProfileID  *string   `json:"profile_id,omitempty" db:"profile_id"`
	ListingID  *string   `json:"listing_id,omitempty" db:"listing_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Email     *string `json:"email,omitempty"`
	ProfileID *string `json:"profile_id,omitempty"`
	ListingID *string `json:"listing_id,omitempty"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      *string `json:"email,omitempty"`
	IsVerified bool    `json:"is_verified"`
	ProfileID  *string `json:"profile_id,omitempty"`
	ListingID  *string `json:"listing_id,omitempty"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Token     string  `json:"token"`
	ProfileID *string `json:"profile_id,omitempty"`
	ListingID *string `json:"listing_id,omitempty"`
}

// UserUpdate is a partial update; nil fields are left unchanged
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	Email     *string `json:"email,omitempty"`
	ProfileID *string `json:"profile_id,omitempty"`
	ListingID *string `json:"listing_id,omitempty"`
}

// PublicView converts a stored user to its response shape
func (u *User) PublicView() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		ProfileID:  u.ProfileID,
		ListingID:  u.ListingID,
	}
}

package models

import "time"

// User is the full credential record as stored. It is never encoded
// into a response; handlers go through View.
type User struct {
	ID                       string
	Email                    string
	Name                     string
	PasswordHash             string
	IsVerified               bool
	VerifyToken              *string
	VerifyTokenExpiry        *time.Time
	ResetPasswordToken       *string
	ResetPasswordTokenExpiry *time.Time
	LastLogin                *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// UserView is the outbound projection of a user. The password hash has
// no field here, so it cannot leak regardless of encoding options.
type UserView struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	IsVerified bool       `json:"is_verified"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (u *User) View() UserView {
	return UserView{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		IsVerified: u.IsVerified,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

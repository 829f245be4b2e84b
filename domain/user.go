package domain

import (
	"strings"
	"time"
)

// User represents a project member identity.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	AvatarInitials string    `json:"avatar_initials,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Initials returns the stored avatar initials, deriving them from the name
// when none were set.
func (u *User) Initials() string {
	if u == nil {
		return ""
	}
	if u.AvatarInitials != "" {
		return u.AvatarInitials
	}
	var initials []rune
	for _, part := range strings.Fields(u.Name) {
		runes := []rune(part)
		if len(runes) == 0 {
			continue
		}
		initials = append(initials, runes[0])
		if len(initials) >= 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}

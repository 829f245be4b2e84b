package domain

import "time"

// Project is the collaboration space that owns members, tasks, messages and
// attachments. Members are ordered and unique by user id.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsMuted     bool      `json:"is_muted"`
	Members     []User    `json:"members,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember reports whether the user belongs to the project.
func (p *Project) HasMember(userID string) bool {
	if p == nil {
		return false
	}
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// AddMember appends the user to the member list, keeping members unique by id.
// It reports whether the list changed.
func (p *Project) AddMember(user User) bool {
	if p == nil || p.HasMember(user.ID) {
		return false
	}
	p.Members = append(p.Members, user)
	return true
}

// Validate checks the project invariants.
func (p *Project) Validate() error {
	if p == nil || p.Name == "" {
		return ErrProjectNameEmpty
	}
	seen := make(map[string]struct{}, len(p.Members))
	for _, m := range p.Members {
		if _, dup := seen[m.ID]; dup {
			return ErrDuplicateMember
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}

package model

import "github.com/google/uuid"

// AdministratorsRole grants the Approve capability.
const AdministratorsRole = "Administrators"

// Actor is whoever performs a request. The zero Actor is anonymous.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Roles []string  `json:"roles"`
}

// Anonymous is the actor for unauthenticated requests.
var Anonymous = Actor{}

func (a Actor) IsAuthenticated() bool {
	return a.ID != uuid.Nil
}

func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated() && a.HasRole(AdministratorsRole)
}

// DisplayName falls back to the email when no name is known.
func (a Actor) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Email
}

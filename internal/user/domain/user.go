package domain

import "time"

type ID string

type User struct {
	ID           ID
	Name         string
	PasswordHash string
	DateCreated  time.Time
	LastUsed     time.Time
}

// Summary is the outward view of a user. It never carries the password hash.
type Summary struct {
	ID          ID
	Name        string
	DateCreated time.Time
	LastUsed    time.Time
}

func (u User) Summary() Summary {
	return Summary{
		ID:          u.ID,
		Name:        u.Name,
		DateCreated: u.DateCreated,
		LastUsed:    u.LastUsed,
	}
}

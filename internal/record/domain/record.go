package domain

import (
	"encoding/json"
	"time"

	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
)

const (
	// AllEmotions is stored when the caller does not restrict the emotion set.
	AllEmotions = "all"
	// NotPeriodic marks a one-off query.
	NotPeriodic = -1
)

type ID string

// Record is one usage event. Output is opaque to the service.
type Record struct {
	ID                    ID
	UserID                userdomain.ID
	FileName              string
	DateCreated           time.Time
	EmotionsAvailable     []string
	PeriodicQueryInterval int
	Output                json.RawMessage
}

// Summary is a record without its output payload.
type Summary struct {
	ID                    ID
	UserID                userdomain.ID
	FileName              string
	DateCreated           time.Time
	EmotionsAvailable     []string
	PeriodicQueryInterval int
}

func (r Record) Summary() Summary {
	return Summary{
		ID:                    r.ID,
		UserID:                r.UserID,
		FileName:              r.FileName,
		DateCreated:           r.DateCreated,
		EmotionsAvailable:     r.EmotionsAvailable,
		PeriodicQueryInterval: r.PeriodicQueryInterval,
	}
}

func DefaultEmotions() []string {
	return []string{AllEmotions}
}

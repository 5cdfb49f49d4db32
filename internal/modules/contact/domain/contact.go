package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not_found")

// Contact is a marketing contact, tagged by where it came from
// ("waitlist", "newsletter", "contact"). Tags accumulate, they are never
// removed here.
type Contact struct {
	ID        string
	Email     string
	Name      string
	Message   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpsertFields are merged into the contact record; nil pointers leave the
// stored value alone.
type UpsertFields struct {
	Name    *string
	Message *string
	Tags    []string
}

type ContactRepo interface {
	Get(email string) (*Contact, error)
	Upsert(email string, f UpsertFields) (*Contact, error)
}

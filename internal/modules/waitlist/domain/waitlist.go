package domain

import (
	"errors"
	"time"
)

var ErrDuplicate = errors.New("email_already_on_waitlist")

type Entry struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

type WaitlistRepo interface {
	// Add returns ErrDuplicate when the email is already on the list.
	Add(email string) (*Entry, error)
	// Emails lists every subscribed address, for broadcasts.
	Emails() ([]string, error)
}

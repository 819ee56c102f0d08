package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrClientNameRequired = errors.New("client first and last name are required")

// Client is a borrower identity. Clients own zero or more loans; deletion is
// blocked while any owned loan is still open.
type Client struct {
	ID         string
	FirstName  string
	LastName   string
	NationalID string
	Phone      string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewClient creates a client. NationalID, phone and address are optional.
func NewClient(firstName, lastName, nationalID, phone, address string, now time.Time) (Client, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Client{}, ErrClientNameRequired
	}
	return Client{
		ID:         uuid.New().String(),
		FirstName:  firstName,
		LastName:   lastName,
		NationalID: strings.TrimSpace(nationalID),
		Phone:      strings.TrimSpace(phone),
		Address:    strings.TrimSpace(address),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// FullName returns the display name of the client.
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

package models

import "time"

type Speaker struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Bio              string    `json:"bio"`
	Topics           string    `json:"topics"`
	FeeRange         string    `json:"fee_range"`
	Location         string    `json:"location"`
	VirtualAvailable bool      `json:"virtual_available"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

// RosterEntry is the public marketing view of an active speaker; contact
// details stay internal.
type RosterEntry struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Bio              string `json:"bio"`
	Topics           string `json:"topics"`
	FeeRange         string `json:"fee_range"`
	Location         string `json:"location"`
	VirtualAvailable bool   `json:"virtual_available"`
}

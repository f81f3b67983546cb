package world

import (
	"errors"
	"strings"
)

type Capability string

const (
	CapabilityNone        Capability = "none"
	CapabilityFishingSpot Capability = "fishing_spot"
	CapabilityDepositBox  Capability = "deposit_box"
)

type Candidate struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Capability Capability `json:"capability"`
	Position   Point      `json:"position"`
}

var ErrInvalidCandidate = errors.New("invalid candidate")

func (c Candidate) Validate() error {
	if strings.TrimSpace(c.ID) == "" || c.Capability == "" {
		return ErrInvalidCandidate
	}
	return nil
}

// Package realtime defines the events fanned out to care-team members.
package realtime

import (
	"time"

	"github.com/google/uuid"
)

const EventAlertCreated = "alert.created"

type Event struct {
	Type       string         `json:"event"`
	Recipients []uuid.UUID    `json:"recipients"`
	Data       map[string]any `json:"data"`
	At         time.Time      `json:"at"`
}

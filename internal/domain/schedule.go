package domain

import (
	"errors"
	"strings"
	"time"
)

// ScheduleTimeLayout is the wall-clock format used by /schedule arguments.
const ScheduleTimeLayout = "2006-01-02 15:04"

// Scheduled message statuses.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusMissed  = "missed"
)

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrPastFireTime = errors.New("fire time must be in the future")
)

// ScheduledMessage is a one-shot admin broadcast to a single chat.
// The target does not have to be a registered user.
type ScheduledMessage struct {
	ID        int64     `json:"id"`
	TargetID  int64     `json:"target_id"`
	Message   string    `json:"message"`
	FireAt    time.Time `json:"fire_at"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// NewScheduledMessage validates and builds a pending broadcast.
// fireAt must be strictly after now; the store assigns the ID later.
func NewScheduledMessage(targetID int64, message string, fireAt, now time.Time) (ScheduledMessage, error) {
	if strings.TrimSpace(message) == "" {
		return ScheduledMessage{}, ErrEmptyMessage
	}
	if !fireAt.After(now) {
		return ScheduledMessage{}, ErrPastFireTime
	}
	return ScheduledMessage{
		TargetID:  targetID,
		Message:   message,
		FireAt:    fireAt,
		CreatedAt: now,
		Status:    StatusPending,
	}, nil
}

// ParseScheduleTime parses "YYYY-MM-DD" + "HH:MM" in the local timezone.
func ParseScheduleTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation(ScheduleTimeLayout, date+" "+clock, time.Local)
}

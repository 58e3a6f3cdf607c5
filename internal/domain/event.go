package domain

import (
	"fmt"
	"strings"
)

// EventType values double as the action names sent to the spreadsheet.
type EventType string

const (
	EventLogin      EventType = "login"
	EventBreakStart EventType = "break"
	EventBreakEnd   EventType = "logout_break"
	EventLogout     EventType = "logout"
)

func ParseEventType(raw string) (EventType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "login":
		return EventLogin, nil
	case "break", "break_start":
		return EventBreakStart, nil
	case "logout_break", "break_end":
		return EventBreakEnd, nil
	case "logout":
		return EventLogout, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, raw)
	}
}

func (e EventType) Label() string {
	switch e {
	case EventLogin:
		return "Login"
	case EventBreakStart:
		return "Break"
	case EventBreakEnd:
		return "Logout Break"
	case EventLogout:
		return "Logout"
	default:
		return string(e)
	}
}

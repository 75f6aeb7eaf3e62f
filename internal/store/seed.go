package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSeed reads seed data from a YAML file mapping type -> id -> document.
// Unknown resource types in the file are rejected up front so a typo doesn't
// silently produce an unreachable collection.
func LoadSeed(path string) (map[ResourceType]map[string]Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string]Document
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}

	seed := make(map[ResourceType]map[string]Document, len(raw))
	for typeName, coll := range raw {
		typ, err := ParseResourceType(typeName)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", path, err)
		}
		seed[typ] = coll
	}
	return seed, nil
}

// DefaultSeed returns the built-in workplace fixtures used when no seed file
// is configured.
func DefaultSeed() map[ResourceType]map[string]Document {
	return map[ResourceType]map[string]Document{
		TypeMeetings: {
			"987654321": {
				"topic":            "Weekly Platform Sync",
				"agenda":           "Developer platform updates",
				"start_time":       "2025-09-08T15:00:00Z",
				"duration_minutes": 45,
				"host_user_id":     "u_123",
				"participants":     []any{"u_123", "u_456", "u_789"},
			},
			"123456789": {
				"topic":            "Contact Center Deep Dive",
				"agenda":           "Roadmap + integration patterns",
				"start_time":       "2025-09-10T17:30:00Z",
				"duration_minutes": 60,
				"host_user_id":     "u_555",
				"participants":     []any{"u_555", "u_777"},
			},
		},
		TypeTeamChat: {
			"msg_1001": {
				"channel":        "devrel-internal",
				"sender_user_id": "u_456",
				"text":           "Reminder: update SDK samples by Friday.",
				"timestamp":      "2025-09-08T14:22:10Z",
			},
			"msg_1002": {
				"channel":        "platform-apps",
				"sender_user_id": "u_123",
				"text":           "Draft blog on persistent participant IDs is ready.",
				"timestamp":      "2025-09-08T16:10:03Z",
			},
		},
		TypeMail: {
			"email_2001": {
				"subject":     "Apps Workshop Agenda",
				"from":        "pm@example.com",
				"to":          []any{"donte@example.com"},
				"received_at": "2025-09-07T19:45:00Z",
				"snippet":     "Sharing the latest outline and owners...",
				"body":        "Hi team,\n\nAttached is the draft agenda...\n",
			},
		},
		TypeCalendar: {
			"event_3001": {
				"title":             "DX Weekly Planning",
				"start":             "2025-09-09T13:00:00Z",
				"end":               "2025-09-09T13:30:00Z",
				"location":          "Video call",
				"organizer_user_id": "u_123",
				"attendees":         []any{"u_123", "u_456", "u_789"},
			},
		},
	}
}

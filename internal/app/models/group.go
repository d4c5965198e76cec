package models

import (
	"time"

	"meetcue-service/internal/app/services/availability"
)

// Group is a set of users matching their availability over a span of weeks.
// CompactedAvailability is the persisted aggregation artifact: per display
// name, how many weeks of the group's duration that member is free per slot,
// normalized into the reference zone.
type Group struct {
	ID                    string                       `bson:"-"`
	Name                  string                       `bson:"name"`
	Code                  string                       `bson:"code"`
	StartDate             time.Time                    `bson:"startDate"`
	EndDate               time.Time                    `bson:"endDate"`
	Duration              int                          `bson:"duration"`
	Selections            []string                     `bson:"selections"`
	UserIDs               []string                     `bson:"userIDs"`
	AdminIDs              []string                     `bson:"adminIDs"`
	CompactedAvailability map[string]availability.Grid `bson:"compactedAvailability,omitempty"`
	LastUpdated           time.Time                    `bson:"lastUpdated,omitempty"`
}

// Solo reports the degenerate single-member state that needs no aggregation.
func (g *Group) Solo() bool {
	return len(g.Selections) < 2
}

// HasSelection reports whether the selection id is registered on the group.
func (g *Group) HasSelection(selectionID string) bool {
	for _, id := range g.Selections {
		if id == selectionID {
			return true
		}
	}
	return false
}

package models

import (
	"fmt"
	"regexp"

	"meetcue-service/internal/app/services/availability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Selection is one user's saved weekly availability pattern. Week grids are
// persisted as dynamic top-level date fields on the document, full-width
// (24h) in the current schema.
type Selection struct {
	ID       string
	Title    string
	UserID   string
	UserName string
	Timezone string
	Days     availability.Schedule
}

// LegacySelection is the pre-migration document shape: grids were persisted
// trimmed to [StartHour, EndHour) and slots could be booleans.
type LegacySelection struct {
	Selection
	StartHour int
	EndHour   int
}

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SelectionFromBson decodes a Selections document. The second return carries
// the legacy form when the document still has hour-window fields; callers are
// expected to migrate and rewrite it.
func SelectionFromBson(id string, doc bson.M) (*Selection, *LegacySelection, error) {
	sel := &Selection{
		ID:       id,
		Title:    stringField(doc, "title"),
		UserID:   stringField(doc, "userID"),
		UserName: stringField(doc, "userName"),
		Timezone: stringField(doc, "timezone"),
		Days:     availability.Schedule{},
	}

	for key, value := range doc {
		if !dateKeyPattern.MatchString(key) {
			continue
		}
		grid, err := gridFromBson(value)
		if err != nil {
			return nil, nil, fmt.Errorf("selection %s field %s: %w", id, key, err)
		}
		sel.Days[key] = grid
	}

	startHour, hasStart := intField(doc, "startHour")
	endHour, hasEnd := intField(doc, "endHour")
	if hasStart || hasEnd {
		return nil, &LegacySelection{Selection: *sel, StartHour: startHour, EndHour: endHour}, nil
	}
	return sel, nil, nil
}

// Migrate converts a legacy selection to the current full-width schema. It is
// idempotent: migrating an already full-width grid set is a no-op pad of
// nothing, and rewriting concurrently from several clients is last-write-wins
// safe because the output depends only on the input document.
func (l *LegacySelection) Migrate() *Selection {
	migrated := l.Selection
	migrated.Days = availability.UntrimSchedule(l.Days, l.StartHour, l.EndHour)
	return &migrated
}

// ToBson renders the document for a whole-document write. Legacy hour-window
// fields are never emitted, which is what strips them on migration rewrite.
func (s *Selection) ToBson() bson.M {
	doc := bson.M{
		"title":    s.Title,
		"userID":   s.UserID,
		"userName": s.UserName,
		"timezone": s.Timezone,
	}
	for date, grid := range s.Days {
		doc[date] = grid
	}
	return doc
}

func stringField(doc bson.M, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func intField(doc bson.M, key string) (int, bool) {
	switch v := doc[key].(type) {
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// gridFromBson normalizes a persisted slot array to integers. Legacy
// documents stored booleans; anything nonzero or true becomes 1-or-count.
func gridFromBson(value interface{}) (availability.Grid, error) {
	raw, ok := value.(primitive.A)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", value)
	}
	grid := make(availability.Grid, len(raw))
	for i, slot := range raw {
		switch v := slot.(type) {
		case bool:
			if v {
				grid[i] = 1
			}
		case int32:
			grid[i] = int(v)
		case int64:
			grid[i] = int(v)
		case int:
			grid[i] = v
		case float64:
			grid[i] = int(v)
		default:
			return nil, fmt.Errorf("slot %d: unsupported type %T", i, slot)
		}
	}
	return grid, nil
}

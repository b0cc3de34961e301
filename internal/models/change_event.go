package models

import (
	"strconv"
	"strings"
	"time"
)

type ChangeType string

const (
	VenueListed   ChangeType = "venue.listed"
	VenueUpdated  ChangeType = "venue.updated"
	VenueDeleted  ChangeType = "venue.deleted"
	ArtistListed  ChangeType = "artist.listed"
	ArtistUpdated ChangeType = "artist.updated"
	ShowListed    ChangeType = "show.listed"
)

// ChangeEvent is published to the change feed after a committed mutation.
type ChangeEvent struct {
	Type       ChangeType `json:"type"`
	EntityID   int64      `json:"entity_id"`
	OccurredAt time.Time  `json:"occurred_at"`
	Payload    any        `json:"payload,omitempty"`
}

func NewChangeEvent(t ChangeType, id int64, payload any, at time.Time) ChangeEvent {
	return ChangeEvent{Type: t, EntityID: id, OccurredAt: at.UTC(), Payload: payload}
}

// Key is the partition key used on the feed; all events of one record share it.
func (e ChangeEvent) Key() string {
	entity, _, _ := strings.Cut(string(e.Type), ".")
	return entity + ":" + strconv.FormatInt(e.EntityID, 10)
}

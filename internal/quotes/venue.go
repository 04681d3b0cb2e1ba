package quotes

import (
	"strings"

	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/google/uuid"
)

const maxCustomVenueLen = 200

type venueKind uint8

const (
	venuePreset venueKind = iota + 1
	venueCustom
)

// Venue is either a catalog venue referenced by id or a free-text venue
// name typed by the customer. The zero value is invalid; build one with
// NewPresetVenue, NewCustomVenue or ParseVenue.
type Venue struct {
	kind venueKind
	id   uuid.UUID
	name string
}

func NewPresetVenue(id uuid.UUID) (Venue, error) {
	if id == uuid.Nil {
		return Venue{}, pkgerrors.New(pkgerrors.CodeValidation, "venue id is required")
	}
	return Venue{kind: venuePreset, id: id}, nil
}

func NewCustomVenue(name string) (Venue, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Venue{}, pkgerrors.New(pkgerrors.CodeValidation, "venue name is required")
	}
	if len(name) > maxCustomVenueLen {
		return Venue{}, pkgerrors.New(pkgerrors.CodeValidation, "venue name is too long")
	}
	return Venue{kind: venueCustom, name: name}, nil
}

// ParseVenue builds a Venue from request input. Exactly one of rawID and
// name must be non-blank.
func ParseVenue(rawID, name string) (Venue, error) {
	rawID, name = strings.TrimSpace(rawID), strings.TrimSpace(name)
	switch {
	case rawID != "" && name != "":
		return Venue{}, pkgerrors.New(pkgerrors.CodeValidation, "provide either venue id or venue name, not both")
	case rawID != "":
		id, err := uuid.Parse(rawID)
		if err != nil {
			return Venue{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid venue id")
		}
		return NewPresetVenue(id)
	case name != "":
		return NewCustomVenue(name)
	default:
		return Venue{}, pkgerrors.New(pkgerrors.CodeValidation, "venue id or venue name is required")
	}
}

// VenueFromColumns rebuilds a Venue from stored columns.
func VenueFromColumns(id *uuid.UUID, name *string) (Venue, bool) {
	if id != nil && *id != uuid.Nil {
		return Venue{kind: venuePreset, id: *id}, true
	}
	if name != nil && *name != "" {
		return Venue{kind: venueCustom, name: *name}, true
	}
	return Venue{}, false
}

func (v Venue) IsPreset() bool { return v.kind == venuePreset }

func (v Venue) IsCustom() bool { return v.kind == venueCustom }

// PresetID returns the catalog venue id for preset venues.
func (v Venue) PresetID() (uuid.UUID, bool) {
	return v.id, v.kind == venuePreset
}

// CustomName returns the typed name for custom venues.
func (v Venue) CustomName() (string, bool) {
	return v.name, v.kind == venueCustom
}

// Columns maps the venue onto the venue_id / venue_name column pair, exactly
// one of which is set.
func (v Venue) Columns() (*uuid.UUID, *string) {
	switch v.kind {
	case venuePreset:
		id := v.id
		return &id, nil
	case venueCustom:
		name := v.name
		return nil, &name
	default:
		return nil, nil
	}
}

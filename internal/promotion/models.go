package promotion

import "time"

// Promotion is an admin designation raising an event's visibility. It is
// independent of the event's moderation status.
type Promotion struct {
	ID            int64      `json:"id" validate:"required"`
	EventID       int64      `json:"event_id,omitempty"`
	Priority      int        `json:"priority"`
	PromotionType string     `json:"promotion_type,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	PromotedBy    string     `json:"promoted_by,omitempty"`
	PromotedAt    *time.Time `json:"promoted_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
	IsExpired     *bool      `json:"is_expired,omitempty"`
}

// Request carries the optional promotion settings for promote and update.
// Unset fields are left to the server.
type Request struct {
	Priority      *int       `json:"priority,omitempty" validate:"omitempty,min=1"`
	PromotionType string     `json:"promotion_type,omitempty"`
	Notes         string     `json:"notes,omitempty" validate:"max=1000"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// PromotedEvent is one row of the promoted events list.
type PromotedEvent struct {
	ID         int64      `json:"id" validate:"required"`
	Name       string     `json:"name"`
	ClubHandle string     `json:"club_handle,omitempty"`
	Date       string     `json:"date,omitempty"`
	Location   string     `json:"location,omitempty"`
	Promotion  *Promotion `json:"promotion,omitempty"`
}

type promotedEventsResponse struct {
	PromotedEvents []PromotedEvent `json:"promoted_events" validate:"required,dive"`
}

// Status says whether an event is currently promoted.
type Status struct {
	IsPromoted *bool      `json:"is_promoted" validate:"required"`
	Promotion  *Promotion `json:"promotion"`
}

// Promoted reports the flag, treating absence as not promoted.
func (s Status) Promoted() bool {
	return s.IsPromoted != nil && *s.IsPromoted
}

// UnpromoteResult acknowledges an unpromote.
type UnpromoteResult struct {
	Message    string `json:"message"`
	IsPromoted *bool  `json:"is_promoted,omitempty"`
}

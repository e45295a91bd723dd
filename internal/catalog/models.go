package catalog

import (
	"encoding/json"
	"strings"
)

// Submission statuses.
const (
	StatusScraped  = "scraped"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Event is a published event as listed publicly.
type Event struct {
	ID           int64    `json:"id" validate:"required"`
	ClubHandle   string   `json:"club_handle"`
	URL          string   `json:"url"`
	Name         string   `json:"name"`
	Date         string   `json:"date"`
	StartTime    string   `json:"start_time"`
	EndTime      *string  `json:"end_time"`
	Location     string   `json:"location"`
	ImageURL     *string  `json:"image_url"`
	Price        *float64 `json:"price"`
	Food         *string  `json:"food"`
	Registration bool     `json:"registration"`
	ClubType     *string  `json:"club_type"`
	AddedAt      string   `json:"added_at"`
}

// EventFilter narrows the event listing. Empty fields are not sent.
type EventFilter struct {
	Search    string
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
}

// Categories decodes either a JSON list or a comma separated string.
type Categories []string

func (c *Categories) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*c = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*c = nil
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*c = append(*c, part)
		}
	}
	return nil
}

// Club is a published club.
type Club struct {
	ID         int64      `json:"id" validate:"required"`
	ClubName   string     `json:"club_name"`
	Categories Categories `json:"categories"`
	ClubPage   string     `json:"club_page"`
	IG         string     `json:"ig"`
	Discord    string     `json:"discord"`
	ClubType   *string    `json:"club_type"`
}

// ClubFilter narrows the club listing. Category "all" means no filter.
type ClubFilter struct {
	Search   string
	Category string
}

type clubsResponse struct {
	Clubs []Club `json:"clubs" validate:"required,dive"`
}

// SubmittedEvent is an event as seen by its submitter or a moderator.
type SubmittedEvent struct {
	ID              int64    `json:"id" validate:"required"`
	ClubHandle      string   `json:"club_handle"`
	URL             string   `json:"url"`
	Name            string   `json:"name"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	EndTime         *string  `json:"end_time"`
	Location        string   `json:"location"`
	Price           *float64 `json:"price"`
	Food            *string  `json:"food"`
	Registration    bool     `json:"registration"`
	ImageURL        *string  `json:"image_url"`
	Description     *string  `json:"description"`
	ClubType        *string  `json:"club_type"`
	Status          string   `json:"status" validate:"oneof=scraped pending approved rejected"`
	SubmittedAt     *string  `json:"submitted_at"`
	RejectionReason *string  `json:"rejection_reason"`
}

// SubmittedClub is a club as seen by its submitter or a moderator.
type SubmittedClub struct {
	ID              int64   `json:"id" validate:"required"`
	ClubName        string  `json:"club_name"`
	Categories      string  `json:"categories"`
	ClubPage        string  `json:"club_page,omitempty"`
	IG              string  `json:"ig,omitempty"`
	Discord         string  `json:"discord,omitempty"`
	ClubType        *string `json:"club_type"`
	Status          string  `json:"status" validate:"oneof=scraped pending approved rejected"`
	SubmittedAt     *string `json:"submitted_at"`
	RejectionReason *string `json:"rejection_reason"`
}

// EventSubmission is the form a user fills to propose an event.
type EventSubmission struct {
	Name         string   `json:"name" validate:"notblank"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string   `json:"startTime" validate:"required"`
	EndTime      string   `json:"endTime"`
	Location     string   `json:"location" validate:"notblank"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Food         string   `json:"food"`
	ClubHandle   string   `json:"clubHandle"`
	ClubType     string   `json:"clubType" validate:"omitempty,oneof=WUSA Athletics 'Student Society'"`
	URL          string   `json:"url" validate:"omitempty,url"`
	Registration bool     `json:"registration"`
}

// Image is the poster uploaded with an event submission.
type Image struct {
	Filename string `json:"filename" validate:"notblank"`
	Data     []byte `json:"data" validate:"required"`
}

// ClubSubmission is the form a user fills to propose a club.
type ClubSubmission struct {
	ClubName   string `json:"clubName" validate:"notblank"`
	Categories string `json:"categories" validate:"notblank"`
	ClubPage   string `json:"clubPage" validate:"omitempty,url"`
	IG         string `json:"ig"`
	Discord    string `json:"discord"`
	ClubType   string `json:"clubType" validate:"omitempty,oneof=WUSA Athletics 'Student Society'"`
}

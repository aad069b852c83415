package dto

type EventRequest struct {
	EventDate      string  `json:"event_date"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Type           string  `json:"type"`
	Notes          *string `json:"notes"`
	IDNumberTarget string  `json:"id_number_target"`
}

// TeamEvent is an event row joined with its owner, as served by the team
// calendar and the CSV export. The owner fields are omitted on the
// own-events listing, which only carries the color.
type TeamEvent struct {
	ID        uint    `json:"id"`
	EventDate string  `json:"event_date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Type      string  `json:"type"`
	Notes     *string `json:"notes"`
	IDNumber  string  `json:"id_number,omitempty"`
	FullName  string  `json:"full_name,omitempty"`
	Color     string  `json:"color,omitempty"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

package entities

// ClickEvent is one logged click on a search result. EventID must reference
// an existing SearchEvent; zero or more clicks may share one event.
type ClickEvent struct {
	ClickID   string `json:"click_id" db:"click_id"`
	Timestamp string `json:"ts" db:"ts"`
	SessionID string `json:"session_id" db:"session_id"`
	EventID   string `json:"event_id" db:"event_id"`
	ContentID string `json:"content_id" db:"content_id"`
	Rank      int    `json:"rank" db:"rank"`
	DwellSec  int    `json:"dwell_sec" db:"dwell_sec"`
}

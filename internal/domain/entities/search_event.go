package entities

// Vertical enumerates the search product surfaces.
type Vertical string

const (
	VerticalMusic   Vertical = "music"
	VerticalPodcast Vertical = "podcast"
	VerticalTV      Vertical = "tv"
)

// SearchEvent is one logged search interaction. Timestamps are carried as the
// ISO-8601 strings produced upstream; lexical order equals chronological
// order, and the first 10 bytes are the calendar day.
type SearchEvent struct {
	EventID          string   `json:"event_id" db:"event_id"`
	Timestamp        string   `json:"ts" db:"ts"`
	UserID           string   `json:"user_id" db:"user_id"`
	SessionID        string   `json:"session_id" db:"session_id"`
	Locale           string   `json:"locale" db:"locale"`
	Device           string   `json:"device" db:"device"`
	QueryRaw         string   `json:"query_raw" db:"query_raw"`
	QueryNorm        string   `json:"query_norm" db:"query_norm"`
	Vertical         Vertical `json:"vertical" db:"vertical"`
	ResultsCount     int      `json:"results_count" db:"results_count"`
	HasKanji         bool     `json:"has_kanji" db:"has_kanji"`
	HasKana          bool     `json:"has_kana" db:"has_kana"`
	HasRomaji        bool     `json:"has_romaji" db:"has_romaji"`
	HasHalfwidthKana bool     `json:"has_halfwidth_kana" db:"has_halfwidth_kana"`
	QueryLen         int      `json:"query_len" db:"query_len"`
}

// Day returns the calendar-day portion of the event timestamp.
func (e *SearchEvent) Day() string {
	if len(e.Timestamp) < 10 {
		return e.Timestamp
	}
	return e.Timestamp[:10]
}

package entities

// ContentType enumerates the kinds of catalog content.
type ContentType string

const (
	ContentTypeTrack   ContentType = "track"
	ContentTypeArtist  ContentType = "artist"
	ContentTypeAlbum   ContentType = "album"
	ContentTypeEpisode ContentType = "episode"
	ContentTypeShow    ContentType = "show"
	ContentTypeMovie   ContentType = "movie"
)

// ContentItem is one row of the immutable content catalog. The pipeline only
// reads it; clicks reference it by ContentID.
type ContentItem struct {
	ContentID    string      `json:"content_id" db:"content_id"`
	Type         ContentType `json:"type" db:"type"`
	Title        string      `json:"title" db:"title"`
	ArtistOrShow string      `json:"artist_or_show" db:"artist_or_show"`
	Language     string      `json:"language" db:"language"`
	ExplicitFlag bool        `json:"explicit_flag" db:"explicit_flag"`
	ReleaseDate  string      `json:"release_date" db:"release_date"`
	Popularity   float64     `json:"popularity" db:"popularity"`
}

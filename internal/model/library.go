package model

// LibraryMediaType is the closed set of library content kinds a media
// server can report.
type LibraryMediaType string

const (
	LibraryMovie   LibraryMediaType = "movie"
	LibraryShow    LibraryMediaType = "show"
	LibraryMusic   LibraryMediaType = "music"
	LibraryBook    LibraryMediaType = "book"
	LibraryUnknown LibraryMediaType = "unknown"
)

// LibraryCount is a normalised per-library item count from a media server.
//
// For a show library ChildCount is the season count and GrandChildCount is
// the episode count. Either may be nil when the source does not report it,
// and a non-show library may carry a ChildCount of its own (Jellyfin's music
// library reports its song count there).
type LibraryCount struct {
	Name           string
	MediaType      LibraryMediaType
	Count          int64
	ChildCount     *int64
	GrandChildCount *int64
}

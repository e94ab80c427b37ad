package model

// TautulliSessionSummary is a normalised Tautulli active-session record.
type TautulliSessionSummary struct {
	User            string
	Title           string
	State           string
	MediaType       string
	SeasonNumber    string
	EpisodeNumber   string
	Progress        float64
	Quality         string
	QualityProfile  string
	VideoStream     string
	Location        Location
}

// TautulliLibrary is a normalised Tautulli library summary.
type TautulliLibrary struct {
	SectionName string
	SectionType string
	Count       int64
	ParentCount *int64
	ChildCount  *int64
	IsActive    bool
}

// TautulliHistoryEntry is one normalised playback-history record.
type TautulliHistoryEntry struct {
	Date          int64 // Unix seconds
	User          string
	FriendlyName  string
	MediaType     string
	WatchedStatus float64 // 0, 0.5 or 1 in the upstream API
}

// TautulliHistory is the aggregate result of the history task: the
// all-time play count plus the raw entries used to derive rolling windows
// (last 24h plays, per-user watches) at encode time.
type TautulliHistory struct {
	TotalPlays int64
	Entries    []TautulliHistoryEntry
}

// WatchUser returns the label value to use for a history entry: the
// friendly name when set, otherwise the raw username.
func (e TautulliHistoryEntry) WatchUser() string {
	if e.FriendlyName != "" {
		return e.FriendlyName
	}
	return e.User
}

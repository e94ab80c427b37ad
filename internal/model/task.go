package model

import "context"

// TaskKind names one of the closed set of provider operations the
// executor can run. Adding a kind here means building tasks of that kind
// in package task and adding a matching case to metricsexport's
// Registry.Absorb, which panics on a kind it does not handle.
type TaskKind string

const (
	TaskSonarrToday       TaskKind = "sonarr_today"
	TaskSonarrMissing     TaskKind = "sonarr_missing"
	TaskRadarr            TaskKind = "radarr"
	TaskLidarr            TaskKind = "lidarr"
	TaskReadarr           TaskKind = "readarr"
	TaskOverseerr         TaskKind = "overseerr"
	TaskJellyseerr        TaskKind = "jellyseerr"
	TaskTautulliSession   TaskKind = "tautulli_session"
	TaskTautulliLibrary   TaskKind = "tautulli_library"
	TaskTautulliHistory   TaskKind = "tautulli_history"
	TaskPlexSession       TaskKind = "plex_session"
	TaskPlexLibrary       TaskKind = "plex_library"
	TaskJellyfinSession   TaskKind = "jellyfin_session"
	TaskJellyfinLibrary   TaskKind = "jellyfin_library"
)

// Task is one unit of scrape work: one operation against one configured
// adapter instance. Run executes the operation against the ambient
// deadline carried by ctx and always returns a TaskResult — adapters never
// propagate errors past Run (see package providers).
type Task struct {
	Kind     TaskKind
	Instance string
	Run      func(ctx context.Context) TaskResult
}

// TaskResult is the normalised output of one Task. Exactly one of the
// fields is meaningful, selected by Kind; the rest are left at their zero
// value. This mirrors Task as a closed, parallel variant pair (see
// spec §9): the executor runs each Task's Run closure without looking at
// its Kind, and the encoder's Absorb dispatches on TaskResult.Kind. The
// compiler does not check that switch for exhaustiveness; an unhandled
// kind panics there at run time.
type TaskResult struct {
	Kind     TaskKind
	Instance string

	SonarrEpisodes  []SonarrEpisode
	RadarrMovies    []RadarrMovie
	LidarrArtists   []LidarrArtist
	ReadarrAuthors  []ReadarrAuthor
	OverseerrKind   OverseerrKind
	OverseerrRequests []OverseerrRequest
	TautulliSessions []TautulliSessionSummary
	TautulliLibraries []TautulliLibrary
	TautulliHistory  TautulliHistory
	Sessions        []Session
	LibraryCounts   []LibraryCount
	Users           []User
}

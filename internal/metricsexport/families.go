package metricsexport

import "github.com/prometheus/client_golang/prometheus"

// mediaServerFamily names the shared {plex,jellyfin}_* metric prefix and
// groups the one handful of gauge vecs those two families populate
// identically, distinguished only by the name prefix and, for plex, the
// extra bandwidth family neither jellyfin emits nor session data offers for
// a server that does not distinguish LAN/WAN for its own clients in the
// same way.
type mediaServerFamily struct {
	sessionCount        *prometheus.GaugeVec
	sessionInfo         *prometheus.GaugeVec
	sessionProgress     *prometheus.GaugeVec
	userActive          *prometheus.GaugeVec
	sessionLocation     *prometheus.GaugeVec
	libraryCount        *prometheus.GaugeVec
	libraryChildCount   *prometheus.GaugeVec
	libraryGrandChild   *prometheus.GaugeVec
	movieCount          *prometheus.GaugeVec
	showCount           *prometheus.GaugeVec
	seasonCount         *prometheus.GaugeVec
	episodeCount        *prometheus.GaugeVec
	sessionBandwidth    *prometheus.GaugeVec // plex only; nil for jellyfin
}

// Registry's families, declared here to keep registerFamilies (the
// construction order) and Absorb (the consumption order) each readable on
// their own.
type registryFamilies struct {
	sonarrTodayEpisode       *prometheus.GaugeVec
	sonarrTodayEpisodesTotal *prometheus.GaugeVec
	sonarrMissingEpisode     *prometheus.GaugeVec
	sonarrMissingEpisodesTotal *prometheus.GaugeVec

	radarrMovieHasFile    *prometheus.GaugeVec
	radarrMovieMonitored  *prometheus.GaugeVec
	radarrMovieAvailable  *prometheus.GaugeVec
	radarrMoviesTotal     *prometheus.GaugeVec
	radarrMoviesMonitoredTotal *prometheus.GaugeVec
	radarrMoviesMissingTotal   *prometheus.GaugeVec

	lidarrArtistMonitored       *prometheus.GaugeVec
	lidarrArtistsTotal          *prometheus.GaugeVec
	lidarrMonitoredArtistsTotal *prometheus.GaugeVec
	lidarrTracksTotal           *prometheus.GaugeVec

	readarrAuthorMonitored       *prometheus.GaugeVec
	readarrAuthorsTotal          *prometheus.GaugeVec
	readarrMonitoredAuthorsTotal *prometheus.GaugeVec
	readarrBooksTotal            *prometheus.GaugeVec

	overseerrRequestStatus     *prometheus.GaugeVec
	overseerrMediaStatus       *prometheus.GaugeVec
	overseerrRequestsTotal     *prometheus.GaugeVec
	overseerrRequestsPending   *prometheus.GaugeVec
	overseerrRequestsApproved  *prometheus.GaugeVec
	overseerrRequestsDeclined  *prometheus.GaugeVec

	jellyseerrRequestStatus    *prometheus.GaugeVec
	jellyseerrMediaStatus      *prometheus.GaugeVec
	jellyseerrRequestsTotal    *prometheus.GaugeVec
	jellyseerrRequestsPending  *prometheus.GaugeVec
	jellyseerrRequestsApproved *prometheus.GaugeVec
	jellyseerrRequestsDeclined *prometheus.GaugeVec

	tautulliSessionCount    prometheus.Gauge
	tautulliSessionInfo     *prometheus.GaugeVec
	tautulliSessionProgress *prometheus.GaugeVec
	tautulliSessionLocation *prometheus.GaugeVec
	tautulliLibraryItemCount   *prometheus.GaugeVec
	tautulliLibraryParentCount *prometheus.GaugeVec
	tautulliLibraryChildCount  *prometheus.GaugeVec
	tautulliLibraryActive      *prometheus.GaugeVec
	tautulliHistoryTotalPlays   prometheus.Gauge
	tautulliHistoryPlays24h     prometheus.Gauge
	tautulliHistoryUserWatches24h *prometheus.GaugeVec

	plexFamily     mediaServerFamily
	jellyfinFamily mediaServerFamily
}

func (r *Registry) registerFamilies() {
	r.sonarrTodayEpisode = r.gaugeVec("sonarr_today_episode", "Sonarr calendar entry for today; value is 1 if the episode file is present, else 0.", []string{"name", "season_number", "episode_number", "title", "serie", "sxe"})
	r.sonarrTodayEpisodesTotal = r.gaugeVec("sonarr_today_episodes_total", "Number of episodes airing today.", []string{"name"})
	r.sonarrMissingEpisode = r.gaugeVec("sonarr_missing_episode", "Sonarr missing-last-week entry; value is 1 if the episode file is present, else 0.", []string{"name", "season_number", "episode_number", "title", "serie", "sxe"})
	r.sonarrMissingEpisodesTotal = r.gaugeVec("sonarr_missing_episodes_total", "Number of episodes missing from the last 7 days.", []string{"name"})

	r.radarrMovieHasFile = r.gaugeVec("radarr_movie_has_file", "1 if the movie file is present on disk.", []string{"name", "title"})
	r.radarrMovieMonitored = r.gaugeVec("radarr_movie_monitored", "1 if the movie is monitored.", []string{"name", "title"})
	r.radarrMovieAvailable = r.gaugeVec("radarr_movie_available", "1 if the movie is available for download.", []string{"name", "title"})
	r.radarrMoviesTotal = r.gaugeVec("radarr_movies_total", "Total number of movies known to Radarr.", []string{"name"})
	r.radarrMoviesMonitoredTotal = r.gaugeVec("radarr_movies_monitored_total", "Number of monitored movies.", []string{"name"})
	r.radarrMoviesMissingTotal = r.gaugeVec("radarr_movies_missing_total", "Number of available movies missing their file.", []string{"name"})

	r.lidarrArtistMonitored = r.gaugeVec("lidarr_artist_monitored", "1 if the artist is monitored.", []string{"name", "artist"})
	r.lidarrArtistsTotal = r.gaugeVec("lidarr_artists_total", "Total number of artists known to Lidarr.", []string{"name"})
	r.lidarrMonitoredArtistsTotal = r.gaugeVec("lidarr_monitored_artists_total", "Number of monitored artists.", []string{"name"})
	r.lidarrTracksTotal = r.gaugeVec("lidarr_tracks_total", "Total number of downloaded tracks across all artists.", []string{"name"})

	r.readarrAuthorMonitored = r.gaugeVec("readarr_author_monitored", "1 if the author is monitored.", []string{"name", "author"})
	r.readarrAuthorsTotal = r.gaugeVec("readarr_authors_total", "Total number of authors known to Readarr.", []string{"name"})
	r.readarrMonitoredAuthorsTotal = r.gaugeVec("readarr_monitored_authors_total", "Number of monitored authors.", []string{"name"})
	r.readarrBooksTotal = r.gaugeVec("readarr_books_total", "Total number of downloaded books across all authors.", []string{"name"})

	r.overseerrRequestStatus, r.overseerrMediaStatus, r.overseerrRequestsTotal, r.overseerrRequestsPending, r.overseerrRequestsApproved, r.overseerrRequestsDeclined = r.registerOverseerrKind("overseerr")
	r.jellyseerrRequestStatus, r.jellyseerrMediaStatus, r.jellyseerrRequestsTotal, r.jellyseerrRequestsPending, r.jellyseerrRequestsApproved, r.jellyseerrRequestsDeclined = r.registerOverseerrKind("jellyseerr")

	r.tautulliSessionCount = r.gauge("tautulli_session_count", "Number of active Tautulli sessions.")
	r.tautulliSessionInfo = r.gaugeVec("tautulli_session_info", "Always 1; carries per-session descriptive labels.", []string{"user", "title", "state", "media_type", "quality", "quality_profile", "video_stream"})
	r.tautulliSessionProgress = r.gaugeVec("tautulli_session_progress", "Playback progress percentage.", []string{"user", "title"})
	r.tautulliSessionLocation = r.gaugeVec("tautulli_session_location", "Always 1; carries per-session geolocation labels.", []string{"user", "title", "city", "country", "latitude", "longitude"})
	r.tautulliLibraryItemCount = r.gaugeVec("tautulli_library_item_count", "Top-level item count of a library section.", []string{"section_name", "section_type"})
	r.tautulliLibraryParentCount = r.gaugeVec("tautulli_library_parent_count", "Parent item count (e.g. seasons) of a library section.", []string{"section_name", "section_type"})
	r.tautulliLibraryChildCount = r.gaugeVec("tautulli_library_child_count", "Child item count (e.g. episodes) of a library section.", []string{"section_name", "section_type"})
	r.tautulliLibraryActive = r.gaugeVec("tautulli_library_active", "1 if the library section is active.", []string{"section_name", "section_type"})
	r.tautulliHistoryTotalPlays = r.gauge("tautulli_history_total_plays", "All-time play count.")
	r.tautulliHistoryPlays24h = r.gauge("tautulli_history_plays_24h", "Play count in the last 24 hours.")
	r.tautulliHistoryUserWatches24h = r.gaugeVec("tautulli_history_user_watches_24h", "Per-user watch count in the last 24 hours.", []string{"user"})

	r.plexFamily = r.registerMediaServerFamily("plex", true)
	r.jellyfinFamily = r.registerMediaServerFamily("jellyfin", false)
}

func (r *Registry) registerOverseerrKind(kind string) (status, mediaStatus, total, pending, approved, declined *prometheus.GaugeVec) {
	status = r.gaugeVec(kind+"_request_status", "Numeric request-approval status code.", []string{"media_type", "requested_by", "media_title"})
	mediaStatus = r.gaugeVec(kind+"_media_status", "Numeric media-availability status code.", []string{"media_type", "requested_by", "media_title"})
	total = r.gaugeVec(kind+"_requests_total", "Total number of requests in the fetched window.", []string{"name"})
	pending = r.gaugeVec(kind+"_requests_pending_total", "Number of pending-approval requests.", []string{"name"})
	approved = r.gaugeVec(kind+"_requests_approved_total", "Number of approved requests.", []string{"name"})
	declined = r.gaugeVec(kind+"_requests_declined_total", "Number of declined requests.", []string{"name"})
	return
}

func (r *Registry) registerMediaServerFamily(prefix string, withBandwidth bool) mediaServerFamily {
	f := mediaServerFamily{
		sessionCount:      r.gaugeVec(prefix+"_session_count", "Number of active sessions.", []string{"name"}),
		sessionInfo:       r.gaugeVec(prefix+"_session_info", "Always 1; carries per-session descriptive labels.", []string{"name", "user", "title", "state", "platform", "decision", "media_type", "quality"}),
		sessionProgress:   r.gaugeVec(prefix+"_session_progress", "Playback progress percentage.", []string{"name", "user", "title"}),
		userActive:        r.gaugeVec(prefix+"_user_active", "1 for a known user with an active session, 0 for a known but inactive user.", []string{"name", "user"}),
		sessionLocation:   r.gaugeVec(prefix+"_session_location", "Always 1; carries per-session geolocation labels.", []string{"name", "user", "title", "city", "country", "latitude", "longitude"}),
		libraryCount:      r.gaugeVec(prefix+"_library_count", "Top-level item count of a library.", []string{"name", "library_name", "library_type"}),
		libraryChildCount: r.gaugeVec(prefix+"_library_child_count", "Child item count of a library (seasons for a show library).", []string{"name", "library_name", "library_type"}),
		libraryGrandChild: r.gaugeVec(prefix+"_library_grandchild_count", "Grandchild item count of a library (episodes for a show library).", []string{"name", "library_name", "library_type"}),
		movieCount:        r.gaugeVec(prefix+"_movie_count", "Aggregate movie count across all movie libraries on the instance.", []string{"name"}),
		showCount:         r.gaugeVec(prefix+"_show_count", "Aggregate show count across all show libraries on the instance.", []string{"name"}),
		seasonCount:       r.gaugeVec(prefix+"_season_count", "Aggregate season count across all show libraries on the instance.", []string{"name"}),
		episodeCount:      r.gaugeVec(prefix+"_episode_count", "Aggregate episode count across all show libraries on the instance.", []string{"name"}),
	}
	if withBandwidth {
		f.sessionBandwidth = r.gaugeVec(prefix+"_session_bandwidth", "Sum of per-session bandwidth in kbps, by network location.", []string{"name", "location"})
	}
	return f
}

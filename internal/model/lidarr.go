package model

// LidarrArtist is a normalised Lidarr library entry.
type LidarrArtist struct {
	Name          string
	Monitored     bool
	TrackFileCount int64
}

// ReadarrAuthor is a normalised Readarr library entry.
type ReadarrAuthor struct {
	Name          string
	Monitored     bool
	BookFileCount int64
}

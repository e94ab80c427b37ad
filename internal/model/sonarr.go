package model

import "fmt"

// SonarrEpisode is a normalised Sonarr calendar or missing-episode entry.
type SonarrEpisode struct {
	Sxe           string // "S%02dE%02d"
	SeasonNumber  int64
	EpisodeNumber int64
	Title         string
	Serie         string
	AirDate       string // YYYY-MM-DD
	HasFile       bool
	Quality       string // empty when HasFile is false
}

// NewSxe formats the conventional "S01E02" episode code.
func NewSxe(season, episode int64) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

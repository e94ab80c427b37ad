// Package plex adapts Plex Media Server's XML-over-JSON status API into
// canonical model records.
package plex

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/tcheronneau/homers-go/internal/geo"
	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/model"
	"github.com/tcheronneau/homers-go/internal/providers/httpbase"
)

type sessionsContainer struct {
	MediaContainer struct {
		Metadata []sessionMetadata `json:"Metadata"`
	} `json:"MediaContainer"`
}

type sessionMetadata struct {
	Type          string `json:"type"`
	GrandparentTitle string `json:"grandparentTitle"`
	Title         string `json:"title"`
	ViewOffset    int64  `json:"viewOffset"`
	Duration      int64  `json:"duration"`
	ParentIndex   int    `json:"parentIndex"`
	Index         int    `json:"index"`
	User          struct {
		Title string `json:"title"`
	} `json:"User"`
	Player struct {
		Title   string `json:"title"`
		State   string `json:"state"`
		Local   bool   `json:"local"`
		Secure  bool   `json:"secure"`
		Relayed bool   `json:"relayed"`
		Address string `json:"address"`
		RemotePublicAddress string `json:"remotePublicAddress"`
	} `json:"Player"`
	Media []struct {
		VideoResolution string `json:"videoResolution"`
		Bitrate         int64  `json:"bitrate"`
		Part            []struct {
			Decision string `json:"decision"`
			Stream   []struct {
				Decision       string `json:"decision"`
				StreamType     int    `json:"streamType"`
			} `json:"Stream"`
		} `json:"Part"`
	} `json:"Media"`
}

// sessionState maps Plex's lowercase player state directly onto
// model.SessionState; unrecognised values fall back to idle.
func sessionState(s string) model.SessionState {
	switch s {
	case "playing":
		return model.SessionPlaying
	case "paused":
		return model.SessionPaused
	case "buffering":
		return model.SessionBuffering
	default:
		return model.SessionIdle
	}
}

// decision derives the canonical stream decision from the container-level
// part decision and, when present, the video stream's own decision: per
// spec, "directplay → direct_play; otherwise copy → direct_stream, else
// transcode".
func (m sessionMetadata) decision() model.StreamDecision {
	if len(m.Media) == 0 || len(m.Media[0].Part) == 0 {
		return model.NoDecision
	}
	part := m.Media[0].Part[0]

	videoDecision := part.Decision
	for _, s := range part.Stream {
		if s.StreamType == 1 { // video stream
			videoDecision = s.Decision
			break
		}
	}

	switch videoDecision {
	case "directplay":
		return model.DirectPlay
	case "copy":
		return model.DirectStream
	default:
		return model.Transcode
	}
}

func (m sessionMetadata) quality() string {
	if len(m.Media) == 0 {
		return ""
	}
	return m.Media[0].VideoResolution
}

func (m sessionMetadata) bitrateKbps() int64 {
	if len(m.Media) == 0 {
		return 0
	}
	return m.Media[0].Bitrate
}

func (m sessionMetadata) displayTitle() string {
	if m.GrandparentTitle != "" {
		return m.GrandparentTitle
	}
	return m.Title
}

func (m sessionMetadata) progress() float64 {
	if m.Duration == 0 {
		return 0
	}
	return float64(m.ViewOffset) / float64(m.Duration) * 100
}

type directoryContainer struct {
	MediaContainer struct {
		Directory []directory `json:"Directory"`
	} `json:"MediaContainer"`
}

type directory struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type libraryItemsContainer struct {
	MediaContainer struct {
		Metadata []libraryItem `json:"Metadata"`
	} `json:"MediaContainer"`
}

type libraryItem struct {
	ChildCount string `json:"childCount"`
	LeafCount  string `json:"leafCount"`
}

// Adapter is one configured Plex Media Server instance.
type Adapter struct {
	Instance string
	client   *httpbase.Client
	geo      *geo.Resolver
	breaker  *gobreaker.CircuitBreaker[any]
}

// New builds an Adapter for one configured Plex instance, authenticated
// with an X-Plex-Token.
func New(instance, baseURL, token string, httpClient *http.Client, resolver *geo.Resolver) *Adapter {
	return &Adapter{
		Instance: instance,
		client:   httpbase.New(baseURL, httpClient, "X-Plex-Token", token),
		geo:      resolver,
		breaker:  httpbase.NewBreaker("plex", instance),
	}
}

// Sessions returns every currently active playback session, geo-resolved
// from each session's reported public address.
func (a *Adapter) Sessions(ctx context.Context) []model.Session {
	container, err := httpbase.Execute(a.breaker, func() (sessionsContainer, error) {
		var c sessionsContainer
		err := a.client.GetJSON(ctx, fmt.Sprintf("%s/status/sessions", a.client.BaseURL), &c)
		return c, err
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("plex session fetch failed")
		return nil
	}

	out := make([]model.Session, 0, len(container.MediaContainer.Metadata))
	for _, m := range container.MediaContainer.Metadata {
		publicAddr := m.Player.RemotePublicAddress
		out = append(out, model.Session{
			Title:          m.displayTitle(),
			User:           m.User.Title,
			State:          sessionState(m.Player.State),
			MediaType:      m.Type,
			Progress:       m.progress(),
			Quality:        m.quality(),
			SeasonNumber:   optionalIndex(m.Type, m.ParentIndex),
			EpisodeNumber:  optionalIndex(m.Type, m.Index),
			StreamDecision: m.decision(),
			Platform:       m.Player.Title,
			Address:        m.Player.Address,
			PublicAddress:  publicAddr,
			Local:          m.Player.Local,
			Secure:         m.Player.Secure,
			Relayed:        m.Player.Relayed,
			Location:       a.geo.Resolve(ctx, publicAddr),
			Bandwidth: model.Bandwidth{
				Kbps:     m.bitrateKbps(),
				Location: bandwidthLocation(m.Player.Local, m.Player.Relayed),
			},
		})
	}
	return out
}

func bandwidthLocation(local, relayed bool) model.BandwidthLocation {
	switch {
	case local:
		return model.BandwidthLAN
	case relayed:
		return model.BandwidthWAN
	default:
		return model.BandwidthWAN
	}
}

func optionalIndex(mediaType string, index int) string {
	if mediaType != "episode" {
		return ""
	}
	return fmt.Sprintf("%d", index)
}

// Libraries returns a LibraryCount per library section. For each directory
// it issues a second call for that section's items, aggregating
// child/leaf counts for show-type libraries per spec.
func (a *Adapter) Libraries(ctx context.Context) []model.LibraryCount {
	dirs, err := httpbase.Execute(a.breaker, func() (directoryContainer, error) {
		var c directoryContainer
		err := a.client.GetJSON(ctx, fmt.Sprintf("%s/library/sections", a.client.BaseURL), &c)
		return c, err
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("plex library list fetch failed")
		return nil
	}

	out := make([]model.LibraryCount, 0, len(dirs.MediaContainer.Directory))
	for _, d := range dirs.MediaContainer.Directory {
		out = append(out, a.librarySummary(ctx, d))
	}
	return out
}

func (a *Adapter) librarySummary(ctx context.Context, d directory) model.LibraryCount {
	items, err := httpbase.Execute(a.breaker, func() (libraryItemsContainer, error) {
		var c libraryItemsContainer
		err := a.client.GetJSON(ctx, fmt.Sprintf("%s/library/sections/%s/all", a.client.BaseURL, d.Key), &c)
		return c, err
	})
	mediaType := libraryMediaType(d.Type)
	count := int64(len(items.MediaContainer.Metadata))

	summary := model.LibraryCount{
		Name:      d.Title,
		MediaType: mediaType,
		Count:     count,
	}
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Str("section", d.Key).Msg("plex library items fetch failed")
		return summary
	}

	if mediaType == model.LibraryShow {
		var child, leaf int64
		for _, item := range items.MediaContainer.Metadata {
			child += parseCount(item.ChildCount)
			leaf += parseCount(item.LeafCount)
		}
		summary.ChildCount = &child
		summary.GrandChildCount = &leaf
	}
	return summary
}

func libraryMediaType(plexType string) model.LibraryMediaType {
	switch plexType {
	case "movie":
		return model.LibraryMovie
	case "show":
		return model.LibraryShow
	case "artist":
		return model.LibraryMusic
	default:
		return model.LibraryUnknown
	}
}

func parseCount(s string) int64 {
	var v int64
	_, _ = fmt.Sscanf(s, "%d", &v)
	return v
}

// statisticsContainer is the response shape of the bandwidth/statistics
// endpoint used to enumerate known accounts.
type statisticsContainer struct {
	MediaContainer struct {
		Account []struct {
			Name string `json:"name"`
		} `json:"Account"`
	} `json:"MediaContainer"`
}

// Users returns every known Plex account from the statistics endpoint. A
// default (empty) container — Plex's shape for "no statistics available" —
// yields an empty result, per spec.
func (a *Adapter) Users(ctx context.Context) []model.User {
	container, err := httpbase.Execute(a.breaker, func() (statisticsContainer, error) {
		var c statisticsContainer
		err := a.client.GetJSON(ctx, fmt.Sprintf("%s/statistics/accounts", a.client.BaseURL), &c)
		return c, err
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("plex account list fetch failed")
		return nil
	}

	out := make([]model.User, 0, len(container.MediaContainer.Account))
	for _, acc := range container.MediaContainer.Account {
		if acc.Name == "" {
			continue
		}
		out = append(out, model.User{Name: acc.Name})
	}
	return out
}

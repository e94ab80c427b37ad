// Package jellyfin adapts Jellyfin's REST session/item-counts API into
// canonical model records.
package jellyfin

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

type sessionEntry struct {
	UserName   string `json:"UserName"`
	RemoteEndPoint string `json:"RemoteEndPoint"`
	DeviceName string `json:"DeviceName"`
	NowPlayingItem *struct {
		Name        string `json:"Name"`
		SeriesName  string `json:"SeriesName"`
		Type        string `json:"Type"`
		ParentIndexNumber int `json:"ParentIndexNumber"`
		IndexNumber       int `json:"IndexNumber"`
		RunTimeTicks      int64 `json:"RunTimeTicks"`
		MediaStreams      []struct {
			Type         string `json:"Type"`
			DisplayTitle string `json:"DisplayTitle"`
		} `json:"MediaStreams"`
	} `json:"NowPlayingItem"`
	PlayState *struct {
		PositionTicks int64 `json:"PositionTicks"`
		IsPaused      bool  `json:"IsPaused"`
	} `json:"PlayState"`
	PlayMethod        string `json:"PlayMethod"`
	TranscodingInfo *struct {
		IsVideoDirect bool `json:"IsVideoDirect"`
	} `json:"TranscodingInfo"`
}

func (e sessionEntry) displayTitle() string {
	if e.NowPlayingItem == nil {
		return ""
	}
	if e.NowPlayingItem.SeriesName != "" {
		return e.NowPlayingItem.SeriesName
	}
	return e.NowPlayingItem.Name
}

func (e sessionEntry) mediaType() string {
	if e.NowPlayingItem == nil {
		return ""
	}
	switch e.NowPlayingItem.Type {
	case "Episode":
		return "episode"
	case "Movie":
		return "movie"
	case "Audio":
		return "track"
	default:
		return "unknown"
	}
}

func (e sessionEntry) progress() float64 {
	if e.NowPlayingItem == nil || e.PlayState == nil || e.NowPlayingItem.RunTimeTicks == 0 {
		return 0
	}
	return float64(e.PlayState.PositionTicks) / float64(e.NowPlayingItem.RunTimeTicks) * 100
}

func (e sessionEntry) state() model.SessionState {
	if e.NowPlayingItem == nil {
		return model.SessionIdle
	}
	if e.PlayState != nil && e.PlayState.IsPaused {
		return model.SessionPaused
	}
	return model.SessionPlaying
}

// decision derives the canonical stream decision from PlayMethod and the
// transcoding block's video-direct flag, per spec: "decision from
// play_method and transcoding direct-video flag".
func (e sessionEntry) decision() model.StreamDecision {
	switch e.PlayMethod {
	case "DirectPlay":
		return model.DirectPlay
	case "DirectStream":
		return model.DirectStream
	case "Transcode":
		if e.TranscodingInfo != nil && e.TranscodingInfo.IsVideoDirect {
			return model.DirectStream
		}
		return model.Transcode
	default:
		return model.NoDecision
	}
}

func (e sessionEntry) quality() string {
	if e.NowPlayingItem == nil {
		return ""
	}
	for _, stream := range e.NowPlayingItem.MediaStreams {
		if stream.Type == "Video" {
			if stream.DisplayTitle != "" {
				return stream.DisplayTitle
			}
			break
		}
	}
	return "Unknown"
}

func optionalIndex(mediaType string, index int) string {
	if mediaType != "episode" {
		return ""
	}
	return fmt.Sprintf("%d", index)
}

type itemCounts struct {
	MovieCount   int64 `json:"MovieCount"`
	SeriesCount  int64 `json:"SeriesCount"`
	EpisodeCount int64 `json:"EpisodeCount"`
	ArtistCount  int64 `json:"ArtistCount"`
	SongCount    int64 `json:"SongCount"`
	BookCount    int64 `json:"BookCount"`
}

type userEntry struct {
	Name string `json:"Name"`
}

// Adapter is one configured Jellyfin instance.
type Adapter struct {
	Instance string
	client   *httpbase.Client
	geo      *geo.Resolver
	breaker  *gobreaker.CircuitBreaker[any]
}

// New builds an Adapter for one configured Jellyfin instance, authenticated
// with an `Authorization: MediaBrowser Token="..."` header.
func New(instance, baseURL, apiKey string, httpClient *http.Client, resolver *geo.Resolver) *Adapter {
	header := fmt.Sprintf("MediaBrowser Token=%q", apiKey)
	return &Adapter{
		Instance: instance,
		client:   httpbase.New(baseURL, httpClient, "Authorization", header),
		geo:      resolver,
		breaker:  httpbase.NewBreaker("jellyfin", instance),
	}
}

// Sessions returns every currently active playback session, geo-resolved
// from the client's remote endpoint.
func (a *Adapter) Sessions(ctx context.Context) []model.Session {
	sessions, err := httpbase.Execute(a.breaker, func() ([]sessionEntry, error) {
		var s []sessionEntry
		err := a.client.GetJSON(ctx, fmt.Sprintf("%s/Sessions", a.client.BaseURL), &s)
		return s, err
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("jellyfin session fetch failed")
		return nil
	}

	out := make([]model.Session, 0, len(sessions))
	for _, e := range sessions {
		if e.NowPlayingItem == nil {
			continue
		}
		mediaType := e.mediaType()
		out = append(out, model.Session{
			Title:          e.displayTitle(),
			User:           e.UserName,
			State:          e.state(),
			MediaType:      mediaType,
			Progress:       e.progress(),
			Quality:        e.quality(),
			SeasonNumber:   optionalIndex(mediaType, e.NowPlayingItem.ParentIndexNumber),
			EpisodeNumber:  optionalIndex(mediaType, e.NowPlayingItem.IndexNumber),
			StreamDecision: e.decision(),
			Platform:       e.DeviceName,
			Address:        e.RemoteEndPoint,
			PublicAddress:  e.RemoteEndPoint,
			Location:       a.geo.Resolve(ctx, e.RemoteEndPoint),
		})
	}
	return out
}

// LibraryCounts expands the single item-counts response into one
// LibraryCount per media kind: movies, shows (with episode grandchild),
// music (artists/songs), and books.
func (a *Adapter) LibraryCounts(ctx context.Context) []model.LibraryCount {
	counts, err := httpbase.Execute(a.breaker, func() (itemCounts, error) {
		var c itemCounts
		err := a.client.GetJSON(ctx, fmt.Sprintf("%s/Items/Counts", a.client.BaseURL), &c)
		return c, err
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("jellyfin item counts fetch failed")
		return nil
	}

	episodeCount := counts.EpisodeCount
	songCount := counts.SongCount

	return []model.LibraryCount{
		{Name: "Movies", MediaType: model.LibraryMovie, Count: counts.MovieCount},
		{Name: "Shows", MediaType: model.LibraryShow, Count: counts.SeriesCount, GrandChildCount: &episodeCount},
		{Name: "Music", MediaType: model.LibraryMusic, Count: counts.ArtistCount, ChildCount: &songCount},
		{Name: "Books", MediaType: model.LibraryBook, Count: counts.BookCount},
	}
}

// Users returns every known Jellyfin account.
func (a *Adapter) Users(ctx context.Context) []model.User {
	users, err := httpbase.Execute(a.breaker, func() ([]userEntry, error) {
		var u []userEntry
		err := a.client.GetJSON(ctx, fmt.Sprintf("%s/Users", a.client.BaseURL), &u)
		return u, err
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("jellyfin user list fetch failed")
		return nil
	}

	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, model.User{Name: u.Name})
	}
	return out
}

// Package tautulli adapts Tautulli's `/api/v2` command API into canonical
// model records: active sessions, library summaries, and play history.
package tautulli

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker/v2"

	"github.com/tcheronneau/homers-go/internal/geo"
	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/model"
	"github.com/tcheronneau/homers-go/internal/providers/httpbase"
)

// envelope is Tautulli's universal `{response: {result, message, data}}`
// wrapper around every command's payload.
type envelope[T any] struct {
	Response struct {
		Result  string `json:"result"`
		Message string `json:"message"`
		Data    T      `json:"data"`
	} `json:"response"`
}

type sessionData struct {
	Sessions []sessionEntry `json:"sessions"`
}

type sessionEntry struct {
	User          string `json:"friendly_name"`
	Title         string `json:"full_title"`
	State         string `json:"state"`
	MediaType     string `json:"media_type"`
	SeasonNum     string `json:"parent_media_index"`
	EpisodeNum    string `json:"media_index"`
	Progress      string `json:"progress_percent"`
	Quality       string `json:"quality_profile"`
	VideoQuality  string `json:"video_full_resolution"`
	VideoStream   string `json:"stream_video_full_resolution"`
	IPAddress     string `json:"ip_address_public"`
}

type libraryData = []libraryEntry

type libraryEntry struct {
	SectionName string `json:"section_name"`
	SectionType string `json:"section_type"`
	Count       string `json:"count"`
	ParentCount string `json:"parent_count"`
	ChildCount  string `json:"child_count"`
	IsActive    int    `json:"is_active"`
}

type historyData struct {
	RecordsTotal int64              `json:"recordsFiltered"`
	Data         []historyEntryWire `json:"data"`
}

type historyEntryWire struct {
	Date          int64   `json:"date"`
	User          string  `json:"user"`
	FriendlyName  string  `json:"friendly_name"`
	MediaType     string  `json:"media_type"`
	WatchedStatus float64 `json:"watched_status"`
}

// Adapter is one configured Tautulli instance. Tautulli authenticates via
// an `apikey` query parameter rather than a header, unlike every other
// adapter family, so the key is held here rather than in httpbase.Client.
type Adapter struct {
	Instance string
	apiKey   string
	client   *httpbase.Client
	geo      *geo.Resolver
	breaker  *gobreaker.CircuitBreaker[any]
}

// New builds an Adapter for one configured Tautulli instance.
func New(instance, baseURL, apiKey string, httpClient *http.Client, resolver *geo.Resolver) *Adapter {
	return &Adapter{
		Instance: instance,
		apiKey:   apiKey,
		client:   httpbase.New(baseURL, httpClient, "", ""),
		geo:      resolver,
		breaker:  httpbase.NewBreaker("tautulli", instance),
	}
}

// Sessions returns every currently active playback session, geo-resolved
// from each session's public IP address.
func (a *Adapter) Sessions(ctx context.Context) []model.TautulliSessionSummary {
	data, err := httpbase.Execute(a.breaker, func() (sessionData, error) {
		return command[sessionData](ctx, a, "get_activity", nil)
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("tautulli session fetch failed")
		return nil
	}

	out := make([]model.TautulliSessionSummary, 0, len(data.Sessions))
	for _, s := range data.Sessions {
		quality := s.Quality
		if quality == "" {
			quality = s.VideoQuality
		}
		out = append(out, model.TautulliSessionSummary{
			User:           s.User,
			Title:          s.Title,
			State:          s.State,
			MediaType:      s.MediaType,
			SeasonNumber:   s.SeasonNum,
			EpisodeNumber:  s.EpisodeNum,
			Progress:       parsePercent(s.Progress),
			Quality:        quality,
			QualityProfile: s.Quality,
			VideoStream:    s.VideoStream,
			Location:       a.geo.Resolve(ctx, s.IPAddress),
		})
	}
	return out
}

// Libraries returns a summary record for every configured library section.
func (a *Adapter) Libraries(ctx context.Context) []model.TautulliLibrary {
	entries, err := httpbase.Execute(a.breaker, func() (libraryData, error) {
		return command[libraryData](ctx, a, "get_library_names", nil)
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("tautulli library fetch failed")
		return nil
	}

	out := make([]model.TautulliLibrary, 0, len(entries))
	for _, e := range entries {
		parent := parseOptionalInt(e.ParentCount)
		child := parseOptionalInt(e.ChildCount)
		out = append(out, model.TautulliLibrary{
			SectionName: e.SectionName,
			SectionType: e.SectionType,
			Count:       parseInt(e.Count),
			ParentCount: parent,
			ChildCount:  child,
			IsActive:    e.IsActive != 0,
		})
	}
	return out
}

// History returns the all-time play count plus the raw history entries
// used at encode time to derive rolling 24h windows.
func (a *Adapter) History(ctx context.Context) model.TautulliHistory {
	data, err := httpbase.Execute(a.breaker, func() (historyData, error) {
		params := url.Values{}
		params.Set("length", "1000")
		return command[historyData](ctx, a, "get_history", params)
	})
	if err != nil {
		logging.Error().Err(err).Str("instance", a.Instance).Msg("tautulli history fetch failed")
		return model.TautulliHistory{}
	}

	entries := make([]model.TautulliHistoryEntry, 0, len(data.Data))
	for _, e := range data.Data {
		entries = append(entries, model.TautulliHistoryEntry{
			Date:          e.Date,
			User:          e.User,
			FriendlyName:  e.FriendlyName,
			MediaType:     e.MediaType,
			WatchedStatus: e.WatchedStatus,
		})
	}

	return model.TautulliHistory{
		TotalPlays: data.RecordsTotal,
		Entries:    entries,
	}
}

// command issues one Tautulli API v2 command and decodes its envelope's
// data payload. Methods cannot carry their own type parameters in Go, so
// this is a package-level function taking the adapter explicitly.
func command[T any](ctx context.Context, a *Adapter, cmd string, params url.Values) (T, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", a.apiKey)
	params.Set("cmd", cmd)

	reqURL := fmt.Sprintf("%s/api/v2?%s", a.client.BaseURL, params.Encode())

	var env envelope[T]
	if err := a.client.GetJSON(ctx, reqURL, &env); err != nil {
		var zero T
		return zero, err
	}
	if env.Response.Result != "success" {
		var zero T
		return zero, fmt.Errorf("tautulli command %q failed: %s", cmd, env.Response.Message)
	}
	return env.Response.Data, nil
}

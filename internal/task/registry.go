// Package task builds the immutable, ordered []model.Task work list from
// configuration once at startup. The executor fans this exact list out on
// every scrape; nothing here is recomputed per scrape.
package task

import (
	"context"
	"net/http"
	"time"

	"github.com/tcheronneau/homers-go/internal/config"
	"github.com/tcheronneau/homers-go/internal/geo"
	"github.com/tcheronneau/homers-go/internal/model"
	"github.com/tcheronneau/homers-go/internal/providers/jellyfin"
	"github.com/tcheronneau/homers-go/internal/providers/lidarr"
	"github.com/tcheronneau/homers-go/internal/providers/overseerr"
	"github.com/tcheronneau/homers-go/internal/providers/plex"
	"github.com/tcheronneau/homers-go/internal/providers/radarr"
	"github.com/tcheronneau/homers-go/internal/providers/readarr"
	"github.com/tcheronneau/homers-go/internal/providers/sonarr"
	"github.com/tcheronneau/homers-go/internal/providers/tautulli"
)

// adapterTimeout bounds each adapter's own HTTP client; the scrape deadline
// (propagated via context) is the real enforcement point, this is a
// belt-and-suspenders floor so a single hung instance cannot hold a
// connection open indefinitely between scrapes.
const adapterTimeout = 60 * time.Second

// Build constructs the full ordered task list for every configured adapter
// instance. Called once at startup.
func Build(cfg *config.Config, resolver *geo.Resolver) []model.Task {
	httpClient := &http.Client{Timeout: adapterTimeout}

	var tasks []model.Task

	for name, sc := range cfg.Sonarr {
		a := sonarr.New(name, sc.Address, sc.APIKey, httpClient)
		tasks = append(tasks,
			model.Task{Kind: model.TaskSonarrToday, Instance: name, Run: func(ctx context.Context) model.TaskResult {
				return model.TaskResult{Kind: model.TaskSonarrToday, Instance: name, SonarrEpisodes: a.Today(ctx)}
			}},
			model.Task{Kind: model.TaskSonarrMissing, Instance: name, Run: func(ctx context.Context) model.TaskResult {
				return model.TaskResult{Kind: model.TaskSonarrMissing, Instance: name, SonarrEpisodes: a.MissingLastWeek(ctx)}
			}},
		)
	}

	for name, rc := range cfg.Radarr {
		a := radarr.New(name, rc.Address, rc.APIKey, httpClient)
		tasks = append(tasks, model.Task{Kind: model.TaskRadarr, Instance: name, Run: func(ctx context.Context) model.TaskResult {
			return model.TaskResult{Kind: model.TaskRadarr, Instance: name, RadarrMovies: a.Movies(ctx)}
		}})
	}

	for name, lc := range cfg.Lidarr {
		a := lidarr.New(name, lc.Address, lc.APIKey, httpClient)
		tasks = append(tasks, model.Task{Kind: model.TaskLidarr, Instance: name, Run: func(ctx context.Context) model.TaskResult {
			return model.TaskResult{Kind: model.TaskLidarr, Instance: name, LidarrArtists: a.Artists(ctx)}
		}})
	}

	for name, rc := range cfg.Readarr {
		a := readarr.New(name, rc.Address, rc.APIKey, httpClient)
		tasks = append(tasks, model.Task{Kind: model.TaskReadarr, Instance: name, Run: func(ctx context.Context) model.TaskResult {
			return model.TaskResult{Kind: model.TaskReadarr, Instance: name, ReadarrAuthors: a.Authors(ctx)}
		}})
	}

	if cfg.Overseerr != nil {
		a := overseerr.New(model.KindOverseerr, "overseerr", cfg.Overseerr.Address, cfg.Overseerr.APIKey, cfg.Overseerr.Requests, httpClient)
		tasks = append(tasks, model.Task{Kind: model.TaskOverseerr, Instance: "overseerr", Run: func(ctx context.Context) model.TaskResult {
			return model.TaskResult{Kind: model.TaskOverseerr, Instance: "overseerr", OverseerrKind: model.KindOverseerr, OverseerrRequests: a.Requests(ctx)}
		}})
	}

	if cfg.Jellyseerr != nil {
		a := overseerr.New(model.KindJellyseerr, "jellyseerr", cfg.Jellyseerr.Address, cfg.Jellyseerr.APIKey, cfg.Jellyseerr.Requests, httpClient)
		tasks = append(tasks, model.Task{Kind: model.TaskJellyseerr, Instance: "jellyseerr", Run: func(ctx context.Context) model.TaskResult {
			return model.TaskResult{Kind: model.TaskJellyseerr, Instance: "jellyseerr", OverseerrKind: model.KindJellyseerr, OverseerrRequests: a.Requests(ctx)}
		}})
	}

	if cfg.Tautulli != nil {
		a := tautulli.New("tautulli", cfg.Tautulli.Address, cfg.Tautulli.APIKey, httpClient, resolver)
		tasks = append(tasks,
			model.Task{Kind: model.TaskTautulliSession, Instance: "tautulli", Run: func(ctx context.Context) model.TaskResult {
				return model.TaskResult{Kind: model.TaskTautulliSession, Instance: "tautulli", TautulliSessions: a.Sessions(ctx)}
			}},
			model.Task{Kind: model.TaskTautulliLibrary, Instance: "tautulli", Run: func(ctx context.Context) model.TaskResult {
				return model.TaskResult{Kind: model.TaskTautulliLibrary, Instance: "tautulli", TautulliLibraries: a.Libraries(ctx)}
			}},
			model.Task{Kind: model.TaskTautulliHistory, Instance: "tautulli", Run: func(ctx context.Context) model.TaskResult {
				return model.TaskResult{Kind: model.TaskTautulliHistory, Instance: "tautulli", TautulliHistory: a.History(ctx)}
			}},
		)
	}

	for name, pc := range cfg.Plex {
		a := plex.New(name, pc.Address, pc.Token, httpClient, resolver)
		tasks = append(tasks,
			model.Task{Kind: model.TaskPlexSession, Instance: name, Run: func(ctx context.Context) model.TaskResult {
				return model.TaskResult{Kind: model.TaskPlexSession, Instance: name, Sessions: a.Sessions(ctx), Users: a.Users(ctx)}
			}},
			model.Task{Kind: model.TaskPlexLibrary, Instance: name, Run: func(ctx context.Context) model.TaskResult {
				return model.TaskResult{Kind: model.TaskPlexLibrary, Instance: name, LibraryCounts: a.Libraries(ctx)}
			}},
		)
	}

	for name, jc := range cfg.Jellyfin {
		a := jellyfin.New(name, jc.Address, jc.APIKey, httpClient, resolver)
		tasks = append(tasks,
			model.Task{Kind: model.TaskJellyfinSession, Instance: name, Run: func(ctx context.Context) model.TaskResult {
				return model.TaskResult{Kind: model.TaskJellyfinSession, Instance: name, Sessions: a.Sessions(ctx), Users: a.Users(ctx)}
			}},
			model.Task{Kind: model.TaskJellyfinLibrary, Instance: name, Run: func(ctx context.Context) model.TaskResult {
				return model.TaskResult{Kind: model.TaskJellyfinLibrary, Instance: name, LibraryCounts: a.LibraryCounts(ctx)}
			}},
		)
	}

	return tasks
}

// Package geo resolves client IP addresses to an approximate physical
// location using a local MaxMind-format City database. Resolution never
// fails the caller: a missing database, a lookup miss, or a timeout all
// fall back to a sentinel Location.
package geo

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"

	"github.com/tcheronneau/homers-go/internal/logging"
	"github.com/tcheronneau/homers-go/internal/model"
)

// lookupTimeout bounds a single resolution, per spec: "≤ 2 s by default".
const lookupTimeout = 2 * time.Second

// cityRecord is the subset of the MaxMind City schema this resolver reads.
type cityRecord struct {
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
	Country struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"country"`
	Location struct {
		Latitude  float64 `maxminddb:"latitude"`
		Longitude float64 `maxminddb:"longitude"`
	} `maxminddb:"location"`
}

// Resolver maps an IP literal to a Location. The zero value is not usable;
// construct with Open.
type Resolver struct {
	db    *maxminddb.Reader
	cache sync.Map // string(ip) -> model.Location
}

// Open opens the MaxMind database at path and returns a Resolver backed by
// it. An empty path, or any error opening or parsing the file, yields a
// Resolver that always returns the sentinel Location — geo enrichment is
// not a hard startup dependency, so Open never returns an error itself.
func Open(path string) *Resolver {
	if path == "" {
		return &Resolver{}
	}

	db, err := maxminddb.Open(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("geo database unavailable, resolver will return sentinel locations")
		return &Resolver{}
	}

	return &Resolver{db: db}
}

// Close releases the underlying database handle, if one was opened.
func (r *Resolver) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Resolve returns the Location for ip. It never returns an error and never
// blocks past lookupTimeout; any failure mode yields
// model.UnknownLocation(ip).
func (r *Resolver) Resolve(ctx context.Context, ip string) model.Location {
	if ip == "" || r.db == nil {
		return model.UnknownLocation(ip)
	}

	if cached, ok := r.cache.Load(ip); ok {
		return cached.(model.Location)
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	type lookupOutcome struct {
		loc model.Location
	}
	resultCh := make(chan lookupOutcome, 1)

	go func() {
		resultCh <- lookupOutcome{loc: r.lookup(ip)}
	}()

	select {
	case outcome := <-resultCh:
		r.cache.Store(ip, outcome.loc)
		return outcome.loc
	case <-ctx.Done():
		logging.Warn().Str("ip", ip).Msg("geo lookup timed out")
		return model.UnknownLocation(ip)
	}
}

// lookup performs the actual in-process database read. Called only from
// Resolve, inside the timeout goroutine.
func (r *Resolver) lookup(ip string) model.Location {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return model.UnknownLocation(ip)
	}

	var record cityRecord
	if err := r.db.Lookup(parsed, &record); err != nil {
		logging.Warn().Err(err).Str("ip", ip).Msg("geo lookup failed")
		return model.UnknownLocation(ip)
	}

	city := record.City.Names["en"]
	country := record.Country.Names["en"]
	if city == "" || country == "" {
		return model.UnknownLocation(ip)
	}

	return model.Location{
		City:      city,
		Country:   country,
		IPAddress: ip,
		Latitude:  formatCoordinate(record.Location.Latitude),
		Longitude: formatCoordinate(record.Location.Longitude),
	}
}

// formatCoordinate renders a latitude/longitude as a string, matching the
// canonical model's string-typed coordinates (spec: "carried as strings to
// avoid locale/precision loss in labels").
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

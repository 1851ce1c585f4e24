// Package collector gathers event and station metadata from heterogeneous
// sources and hands renderers de-duplicated, optionally filtered record sets.
package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geoforge/wavedeck/internal/domain"
)

// Collector accumulates events and stations. Events are de-duplicated by
// full equality, stations by id with later additions overwriting earlier
// ones. The zero value is not usable; call New.
type Collector struct {
	events   []domain.Event
	stations map[string]domain.Station

	eventFilter   []string
	stationFilter []string

	client *http.Client
}

func New() *Collector {
	return &Collector{
		stations: make(map[string]domain.Station),
		client:   http.DefaultClient,
	}
}

// AddEvent adds a single already-normalized event, skipping exact duplicates.
func (c *Collector) AddEvent(ev domain.Event) {
	for _, existing := range c.events {
		if existing == ev {
			return
		}
	}
	c.events = append(c.events, ev)
}

// AddEventRecords validates and adds loose event records. The first invalid
// record aborts the call; records added before it remain.
func (c *Collector) AddEventRecords(records ...domain.EventRecord) error {
	for _, rec := range records {
		ev, err := rec.Event()
		if err != nil {
			return err
		}
		c.AddEvent(ev)
	}
	return nil
}

// AddEventsDocument decodes a YAML or JSON document holding either a single
// event record or a list of them.
func (c *Collector) AddEventsDocument(data []byte) error {
	records, err := decodeRecords[domain.EventRecord](data)
	if err != nil {
		return fmt.Errorf("decode events: %w", err)
	}
	return c.AddEventRecords(records...)
}

// AddEventsFile reads a file of event records.
func (c *Collector) AddEventsFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	return c.AddEventsDocument(data)
}

// AddEventsURL fetches event records from an http(s) URL.
func (c *Collector) AddEventsURL(ctx context.Context, url string) error {
	data, err := c.fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	return c.AddEventsDocument(data)
}

// AddStation adds a single already-normalized station. A station with the
// same id replaces the earlier one.
func (c *Collector) AddStation(st domain.Station) {
	c.stations[st.ID] = st
}

// AddStationRecords validates and adds loose station records.
func (c *Collector) AddStationRecords(records ...domain.StationRecord) error {
	for _, rec := range records {
		st, err := rec.Station()
		if err != nil {
			return err
		}
		c.AddStation(st)
	}
	return nil
}

// AddStationsDocument decodes a YAML or JSON document holding either a single
// station record or a list of them.
func (c *Collector) AddStationsDocument(data []byte) error {
	records, err := decodeRecords[domain.StationRecord](data)
	if err != nil {
		return fmt.Errorf("decode stations: %w", err)
	}
	return c.AddStationRecords(records...)
}

// AddStationsFile reads a file of station records.
func (c *Collector) AddStationsFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read stations: %w", err)
	}
	return c.AddStationsDocument(data)
}

// AddStationsURL fetches station records from an http(s) URL.
func (c *Collector) AddStationsURL(ctx context.Context, url string) error {
	data, err := c.fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch stations: %w", err)
	}
	return c.AddStationsDocument(data)
}

// SetEventFilter restricts Events to events whose id matches one of the given
// ids, compared case-insensitively. Events without an id are dropped while a
// filter is set. Pass nil to clear.
func (c *Collector) SetEventFilter(ids []string) {
	c.eventFilter = ids
}

// SetStationFilter restricts Stations to ids matching one of the given glob
// patterns (e.g. "HT.*"). Pass nil to clear.
func (c *Collector) SetStationFilter(patterns []string) {
	c.stationFilter = patterns
}

// Events returns the filtered events in insertion order.
func (c *Collector) Events() []domain.Event {
	if len(c.eventFilter) == 0 {
		out := make([]domain.Event, len(c.events))
		copy(out, c.events)
		return out
	}

	var out []domain.Event
	for _, ev := range c.events {
		if ev.EventID == "" {
			continue
		}
		for _, id := range c.eventFilter {
			if strings.EqualFold(ev.EventID, id) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

// Stations returns the filtered stations sorted by id.
func (c *Collector) Stations() []domain.Station {
	out := make([]domain.Station, 0, len(c.stations))
	for _, st := range c.stations {
		if len(c.stationFilter) > 0 && !matchesAny(st.ID, c.stationFilter) {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Collector) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func matchesAny(id string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, id); err == nil && ok {
			return true
		}
	}
	return false
}

// decodeRecords accepts a single mapping or a sequence of mappings. YAML is a
// superset of JSON, so one decoder covers both formats.
func decodeRecords[T any](data []byte) ([]T, error) {
	var list []T
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var single T
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []T{single}, nil
}

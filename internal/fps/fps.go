// Package fps maintains the set of HDB carparks in the Free Parking Scheme,
// sourced from the data.gov.sg HDB Carpark Information dataset.
package fps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"parksmart/internal/kv"
)

// DefaultDatasetURL queries the full HDB Carpark Information dataset.
const DefaultDatasetURL = "https://data.gov.sg/api/action/datastore_search" +
	"?resource_id=d_23f946fa557947f93a8043bbef41dd09&limit=5000"

// StorageKey holds the cached FPS carpark id list.
const StorageKey = "parksmart_fps_carparks"

type datasetResponse struct {
	Result struct {
		Records []datasetRecord `json:"records"`
	} `json:"result"`
}

type datasetRecord struct {
	CarParkNo   string `json:"car_park_no"`
	FreeParking string `json:"free_parking"`
}

// Fetcher pulls the FPS membership list from data.gov.sg.
type Fetcher struct {
	client *http.Client
	url    string
}

func NewFetcher(url string) *Fetcher {
	if url == "" {
		url = DefaultDatasetURL
	}
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    url,
	}
}

// Fetch returns the sorted ids of carparks with any free-parking window.
// The dataset marks non-members with free_parking = "NO"; members carry the
// window description (e.g. "SUN & PH FR 7AM-10.30PM").
func (f *Fetcher) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch carpark dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch carpark dataset: HTTP %d", resp.StatusCode)
	}

	var payload datasetResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode carpark dataset: %w", err)
	}
	if payload.Result.Records == nil {
		return nil, fmt.Errorf("decode carpark dataset: unexpected response shape")
	}

	ids := make([]string, 0, len(payload.Result.Records))
	for _, r := range payload.Result.Records {
		if r.FreeParking != "" && r.FreeParking != "NO" {
			ids = append(ids, r.CarParkNo)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Set answers FPS membership queries.
type Set struct {
	ids map[string]struct{}
}

func NewSet(ids []string) *Set {
	s := &Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *Set) Contains(carparkID string) bool {
	_, ok := s.ids[carparkID]
	return ok
}

func (s *Set) Len() int {
	return len(s.ids)
}

// Save caches the id list in the store under StorageKey.
func Save(store kv.Store, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal fps list: %w", err)
	}
	return store.Set(StorageKey, string(data))
}

// Load reads the cached list. A missing or corrupt cache yields an empty set.
func Load(store kv.Store) *Set {
	raw, ok, err := store.Get(StorageKey)
	if err != nil || !ok {
		return NewSet(nil)
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return NewSet(nil)
	}
	return NewSet(ids)
}

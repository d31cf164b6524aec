package fps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"parksmart/internal/kv"
)

const sampleDataset = `{
	"result": {
		"records": [
			{"car_park_no": "ACB", "free_parking": "SUN & PH FR 7AM-10.30PM"},
			{"car_park_no": "BM29", "free_parking": "NO"},
			{"car_park_no": "A12", "free_parking": "SUN & PH FR 7AM-10.30PM"},
			{"car_park_no": "C20", "free_parking": ""}
		]
	}
}`

func TestFetchFiltersAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL)
	ids, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := []string{"A12", "ACB"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Fetch() = %v, want %v", ids, want)
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewFetcher(srv.URL).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFetchUnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": {}}`))
	}))
	defer srv.Close()

	if _, err := NewFetcher(srv.URL).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing records array")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := kv.NewMemory()

	if err := Save(store, []string{"A12", "ACB"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	set := Load(store)
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	if !set.Contains("A12") || !set.Contains("ACB") {
		t.Error("expected saved ids to be members")
	}
	if set.Contains("BM29") {
		t.Error("BM29 must not be a member")
	}
}

func TestLoadMissingOrCorrupt(t *testing.T) {
	store := kv.NewMemory()

	if set := Load(store); set.Len() != 0 {
		t.Errorf("missing cache should load empty, got %d", set.Len())
	}

	store.Set(StorageKey, "{not json")
	if set := Load(store); set.Len() != 0 {
		t.Errorf("corrupt cache should load empty, got %d", set.Len())
	}
}

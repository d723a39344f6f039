package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"animal-shelter/internal/adapters/auth/statictoken"
	mem "animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/platform/metrics"
	"animal-shelter/internal/router"
)

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	h, err := router.NewRouter(context.Background(), opts)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_CRUD(t *testing.T) {
	ts := newServer(t, router.Options{
		Repo: mem.NewAnimalsRepo(
			animals.Record{"animal_id": "A1", "animal_type": "Dog", "breed": "Beagle", "name": "Rex", "age_upon_outcome_in_weeks": 52},
		),
	})
	operator := "op-1"

	// 1) Sin operador no se puede escribir
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals", "", map[string]any{"animal_id": "A2"})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without operator, got %d", st)
		}
	}

	// 2) Operador crea
	{
		st, body := doReq(t, ts.URL, "POST", "/animals", operator, map[string]any{
			"animal_id":                 "A2",
			"animal_type":               "Cat",
			"breed":                     "Siamese",
			"name":                      "Luna",
			"age_upon_outcome_in_weeks": 10,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
		}
	}

	// 3) Documento vacío es inválido
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals", operator, map[string]any{})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty record, got %d", st)
		}
	}

	// 4) Búsqueda: filtro vacío trae todo, _id no sale
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/search", "", map[string]any{})
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 2 {
			t.Fatalf("expected 2 records, got %d", len(items))
		}
		for _, it := range items {
			if _, ok := it["_id"]; ok {
				t.Fatalf("_id leaked: %v", it)
			}
		}
	}

	// 5) Update sin matches
	{
		st, body := doReq(t, ts.URL, "PATCH", "/animals", operator, map[string]any{
			"filter":  map[string]any{"animal_id": "nope"},
			"changes": map[string]any{"name": "Ghost"},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), `"nModified":0`) {
			t.Fatalf("expected nModified 0, got %s", string(body))
		}
	}

	// 6) Update con $inc
	{
		st, body := doReq(t, ts.URL, "PATCH", "/animals", operator, map[string]any{
			"filter":  map[string]any{"animal_type": "Dog"},
			"changes": map[string]any{"$inc": map[string]any{"age_upon_outcome_in_weeks": 1}},
		})
		if st != http.StatusOK || !strings.Contains(string(body), `"nModified":1`) {
			t.Fatalf("expected 1 modified, got %d body=%s", st, string(body))
		}
	}

	// 7) Delete con filtro vacío se rechaza; con filtro borra
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/animals", operator, map[string]any{})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty delete filter, got %d", st)
		}

		st, body := doReq(t, ts.URL, "DELETE", "/animals", operator, map[string]any{"animal_id": "A2"})
		if st != http.StatusOK || !strings.Contains(string(body), `"n":1`) {
			t.Fatalf("expected 1 deleted, got %d body=%s", st, string(body))
		}
	}

	// 8) Operador no soportado
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/search", "", map[string]any{
			"name": map[string]any{"$where": "1"},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unsupported operator, got %d", st)
		}
	}
}

func TestHTTP_DashboardAfterRefresh(t *testing.T) {
	ts := newServer(t, router.Options{})
	operator := "op-1"

	// Snapshot vacío al arrancar
	{
		st, body := doReq(t, ts.URL, "GET", "/api/table", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 table, got %d body=%s", st, string(body))
		}
	}

	for _, rec := range []map[string]any{
		{"animal_type": "Dog", "breed": "Beagle", "name": "Rex", "age_upon_outcome_in_weeks": 52, "location_lat": 30.3, "location_long": -97.7},
		{"animal_type": "Dog", "breed": "Boxer", "name": "Max", "age_upon_outcome_in_weeks": 8, "location_lat": 30.1, "location_long": -97.9},
	} {
		if st, body := doReq(t, ts.URL, "POST", "/animals", operator, rec); st != http.StatusCreated {
			t.Fatalf("create: %d %s", st, string(body))
		}
	}

	if st, body := doReq(t, ts.URL, "POST", "/api/snapshot/refresh", operator, nil); st != http.StatusOK {
		t.Fatalf("refresh: %d %s", st, string(body))
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/api/options?type=Dog", "", nil)
		if st != http.StatusOK {
			t.Fatalf("options: %d %s", st, string(body))
		}
		var opts struct {
			AgeMin int `json:"age_min"`
			AgeMax int `json:"age_max"`
		}
		_ = json.Unmarshal(body, &opts)
		if opts.AgeMin != 8 || opts.AgeMax != 52 {
			t.Fatalf("unexpected age bounds %+v", opts)
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/api/table?breed=Beagle&selected=0", "", nil)
		if st != http.StatusOK {
			t.Fatalf("table: %d %s", st, string(body))
		}
		var page struct {
			Total int `json:"total"`
			Map   *struct {
				Markers []struct {
					Tooltip string `json:"tooltip"`
				} `json:"markers"`
			} `json:"map"`
		}
		_ = json.Unmarshal(body, &page)
		if page.Total != 1 || page.Map == nil || len(page.Map.Markers) != 1 || page.Map.Markers[0].Tooltip != "Rex" {
			t.Fatalf("unexpected table page %s", string(body))
		}
	}
}

func TestHTTP_StaticTokenRejectsDebugHeader(t *testing.T) {
	ts := newServer(t, router.Options{AuthVerifier: statictoken.New("s3cret", "")})

	st, _ := doReq(t, ts.URL, "POST", "/animals", "op-1", map[string]any{"name": "x"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header when token is configured, got %d", st)
	}

	req, _ := http.NewRequest("POST", ts.URL+"/animals", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Authorization", "Bearer s3cret")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 with bearer token, got %d", res.StatusCode)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t, router.Options{Metrics: metrics.New("shelter_test")})

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}

	st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("metrics: %d", st)
	}
	if !strings.Contains(string(body), "shelter_test_store_operations_total") {
		t.Fatalf("expected store metrics, got:\n%s", string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

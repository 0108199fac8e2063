package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/herbverse/plantdb"
	"github.com/herbverse/plantdb/catalog"
	"github.com/herbverse/plantdb/inmemory"
)

const qaToken = "qa-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// failingStore loads fine but rejects every mutation.
type failingStore struct {
	*inmemory.PlantStore
}

func (failingStore) Insert(ctx context.Context, rec *plantdb.PlantRecord) error {
	return errors.New("write timeout")
}

func (failingStore) Delete(ctx context.Context, id plantdb.UUID) error {
	return errors.New("write timeout")
}

func seedPlants() []*plantdb.PlantRecord {
	return []*plantdb.PlantRecord{
		{CommonName: "Neem", BotanicalName: "Azadirachta indica", HealthBenefits: []string{"Skin Care"}, Region: []string{"India"}},
		{CommonName: "Tulsi", BotanicalName: "Ocimum tenuiflorum", Region: []string{"India", "Nepal"}},
		{CommonName: "Aloe Vera", BotanicalName: "Aloe barbadensis miller"},
		{CommonName: "Ashwagandha", BotanicalName: "Withania somnifera"},
		{CommonName: "Brahmi", BotanicalName: "Bacopa monnieri"},
	}
}

func newTestRouter(t *testing.T, store plantdb.PlantStore, export Exporter) *gin.Engine {
	t.Helper()
	c, err := catalog.New(store, catalog.Options{NoLoadRetry: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	router := gin.New()
	if err := Mount(router, &Plants{Catalog: c, Export: export}, StaticRoleResolver{Token: qaToken}); err != nil {
		t.Fatal(err)
	}
	return router
}

func do(router http.Handler, method, path, token string, body string, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, BasePath+path, nil)
	} else {
		req = httptest.NewRequest(method, BasePath+path, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
}

func entryKeys(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var entries []plantdb.Entry
	decode(t, w, &entries)
	r := make([]string, len(entries))
	for i := range entries {
		r[i] = entries[i].Key
	}
	return r
}

func TestListPlants(t *testing.T) {
	router := newTestRouter(t, inmemory.NewPlantStore(seedPlants()...), nil)

	w := do(router, http.MethodGet, "/plants", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if got := strings.Join(entryKeys(t, w), ","); got != "Aloe Vera,Ashwagandha,Brahmi,Neem,Tulsi" {
		t.Fatalf("ascending %s", got)
	}
	w = do(router, http.MethodGet, "/plants?order=desc", "", "", "")
	if got := strings.Join(entryKeys(t, w), ","); got != "Tulsi,Neem,Brahmi,Ashwagandha,Aloe Vera" {
		t.Fatalf("descending %s", got)
	}
	if w := do(router, http.MethodGet, "/plants?order=up", "", "", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad order status %d", w.Code)
	}
}

func TestSearchPlants(t *testing.T) {
	// Seeded in this order the index is neem(ashwagandha(aloe vera, brahmi), tulsi).
	router := newTestRouter(t, inmemory.NewPlantStore(seedPlants()...), nil)

	w := do(router, http.MethodGet, "/plants/search?key=tulsi", "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var r catalog.SearchResult
	decode(t, w, &r)
	if r.Entry == nil || r.Entry.Key != "Tulsi" || r.Comparisons != 2 {
		t.Fatalf("unexpected result %+v", r)
	}

	w = do(router, http.MethodGet, "/plants/stats", "", "", "")
	var s catalog.Stats
	decode(t, w, &s)
	if s.Total != 5 || s.Height != 3 || s.LastComparisons != 2 {
		t.Fatalf("unexpected stats %+v", s)
	}

	w = do(router, http.MethodGet, "/plants/search?key=", "", "", "")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "please enter a search term") {
		t.Fatalf("empty key: %d %s", w.Code, w.Body.String())
	}
}

func TestSearchAllAndFilter(t *testing.T) {
	router := newTestRouter(t, inmemory.NewPlantStore(seedPlants()...), nil)

	w := do(router, http.MethodGet, "/plants/search/all?q=skin", "", "", "")
	if got := strings.Join(entryKeys(t, w), ","); got != "Neem" {
		t.Fatalf("search all %s", got)
	}

	w = do(router, http.MethodGet, "/plants/filter?expr="+url.QueryEscape(`"Nepal" in plant.region`), "", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("filter status %d %s", w.Code, w.Body.String())
	}
	if got := strings.Join(entryKeys(t, w), ","); got != "Tulsi" {
		t.Fatalf("filter %s", got)
	}
	w = do(router, http.MethodGet, "/plants/filter?expr="+url.QueryEscape("plant."), "", "", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter status %d", w.Code)
	}
}

func TestInsertPlant(t *testing.T) {
	store := inmemory.NewPlantStore(seedPlants()...)
	router := newTestRouter(t, store, nil)
	body := `{"common_name":"Giloy","botanical_name":"Tinospora cordifolia","precautions":["May lower blood sugar"]}`

	w := do(router, http.MethodPost, "/plants", "", body, "application/json")
	if w.Code != http.StatusForbidden {
		t.Fatalf("anonymous insert status %d", w.Code)
	}
	var msg map[string]string
	decode(t, w, &msg)
	if msg["message"] != catalog.AdminOnlyMessage {
		t.Fatalf("message %q", msg["message"])
	}

	w = do(router, http.MethodPost, "/plants", qaToken, body, "application/json")
	if w.Code != http.StatusCreated {
		t.Fatalf("admin insert status %d %s", w.Code, w.Body.String())
	}
	var rec plantdb.PlantRecord
	decode(t, w, &rec)
	if rec.ID.IsNil() || rec.GrowthRate != plantdb.DefaultGrowthRate {
		t.Fatalf("unexpected record %+v", rec)
	}
	if store.Count() != 6 {
		t.Fatalf("store rows %d", store.Count())
	}

	w = do(router, http.MethodPost, "/plants", qaToken, `{"common_name":"GILOY","botanical_name":"x"}`, "application/json")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status %d", w.Code)
	}
	w = do(router, http.MethodPost, "/plants", qaToken, `{"common_name":"Mint"}`, "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing botanical name status %d", w.Code)
	}
	w = do(router, http.MethodPost, "/plants", qaToken, `{"common_name":`, "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status %d", w.Code)
	}
}

func TestInsertPlant_Form(t *testing.T) {
	router := newTestRouter(t, inmemory.NewPlantStore(seedPlants()...), nil)
	form := url.Values{
		"common_name":    {"Giloy"},
		"botanical_name": {"Tinospora cordifolia"},
		"region":         {"India, Sri Lanka,"},
		"max_height":     {"3.5"},
		"is_featured":    {"true"},
	}
	w := do(router, http.MethodPost, "/plants", qaToken, form.Encode(), "application/x-www-form-urlencoded")
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d %s", w.Code, w.Body.String())
	}
	var rec plantdb.PlantRecord
	decode(t, w, &rec)
	if len(rec.Region) != 2 || rec.Region[1] != "Sri Lanka" || rec.MaxHeight != 3.5 || !rec.IsFeatured {
		t.Fatalf("unexpected record %+v", rec)
	}

	form.Set("common_name", "Mint")
	form.Set("botanical_name", "Mentha")
	form.Set("max_height", "tall")
	w = do(router, http.MethodPost, "/plants", qaToken, form.Encode(), "application/x-www-form-urlencoded")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad number status %d", w.Code)
	}
}

func TestDeletePlant(t *testing.T) {
	store := inmemory.NewPlantStore(seedPlants()...)
	router := newTestRouter(t, store, nil)

	if w := do(router, http.MethodDelete, "/plants/Neem", "", "", ""); w.Code != http.StatusForbidden {
		t.Fatalf("anonymous delete status %d", w.Code)
	}
	if w := do(router, http.MethodDelete, "/plants/Giloy", qaToken, "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing delete status %d", w.Code)
	}
	if w := do(router, http.MethodDelete, "/plants/aloe%20vera", qaToken, "", ""); w.Code != http.StatusOK {
		t.Fatalf("delete status %d %s", w.Code, w.Body.String())
	}
	if store.Count() != 4 {
		t.Fatalf("store rows %d", store.Count())
	}
}

func TestStoreFailureIsBadGateway(t *testing.T) {
	router := newTestRouter(t, failingStore{inmemory.NewPlantStore(seedPlants()...)}, nil)

	w := do(router, http.MethodPost, "/plants", qaToken, `{"common_name":"Giloy","botanical_name":"Tinospora cordifolia"}`, "application/json")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("insert status %d", w.Code)
	}
	if w := do(router, http.MethodDelete, "/plants/Neem", qaToken, "", ""); w.Code != http.StatusBadGateway {
		t.Fatalf("delete status %d", w.Code)
	}
	w = do(router, http.MethodGet, "/plants/stats", "", "", "")
	var s catalog.Stats
	decode(t, w, &s)
	if s.Total != 5 {
		t.Fatalf("index changed: %+v", s)
	}
}

func TestReloadAndExport(t *testing.T) {
	store := inmemory.NewPlantStore(seedPlants()...)
	var exported []*plantdb.PlantRecord
	router := newTestRouter(t, store, func(ctx context.Context, records []*plantdb.PlantRecord) error {
		exported = records
		return nil
	})

	if w := do(router, http.MethodPost, "/plants/reload", "", "", ""); w.Code != http.StatusForbidden {
		t.Fatalf("anonymous reload status %d", w.Code)
	}
	store.Seed(&plantdb.PlantRecord{CommonName: "Giloy", BotanicalName: "Tinospora cordifolia"})
	w := do(router, http.MethodPost, "/plants/reload", qaToken, "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"plants": 6`) {
		t.Fatalf("reload: %d %s", w.Code, w.Body.String())
	}

	if w := do(router, http.MethodPost, "/plants/export", "", "", ""); w.Code != http.StatusForbidden {
		t.Fatalf("anonymous export status %d", w.Code)
	}
	if w := do(router, http.MethodPost, "/plants/export", qaToken, "", ""); w.Code != http.StatusOK {
		t.Fatalf("export status %d", w.Code)
	}
	if len(exported) != 6 || exported[0].CommonName != "Aloe Vera" {
		t.Fatalf("unexpected export %d", len(exported))
	}

	router = newTestRouter(t, inmemory.NewPlantStore(), nil)
	if w := do(router, http.MethodPost, "/plants/export", qaToken, "", ""); w.Code != http.StatusNotImplemented {
		t.Fatalf("unconfigured export status %d", w.Code)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code plantdb.ErrorCode
		want int
	}{
		{plantdb.InvalidRecord, http.StatusBadRequest},
		{plantdb.EmptyQuery, http.StatusBadRequest},
		{plantdb.InvalidFilter, http.StatusBadRequest},
		{plantdb.DuplicateKey, http.StatusConflict},
		{plantdb.NotFound, http.StatusNotFound},
		{plantdb.Unauthorized, http.StatusForbidden},
		{plantdb.StoreFailure, http.StatusBadGateway},
		{plantdb.Unknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusOf(plantdb.NewError(tt.code, errors.New("x"), nil)); got != tt.want {
			t.Errorf("%v: got %d, want %d", tt.code, got, tt.want)
		}
	}
	if got := StatusOf(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("plain error: got %d", got)
	}
}

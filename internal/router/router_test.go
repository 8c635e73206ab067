package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/senyabanana/rfq-desk/internal/handlers"
	"github.com/senyabanana/rfq-desk/internal/models"
	"github.com/senyabanana/rfq-desk/internal/repository"
	"github.com/senyabanana/rfq-desk/internal/services"

	"go.uber.org/zap"
)

type fakeBackend struct {
	mu       sync.Mutex
	endDate  time.Time
	failArc  bool
	counters []models.CounterOfferRequest
	arcs     []models.ArcApprovalRequest
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/rfq/rfq-1":
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "rfq-1",
			"eventCode":     "EV-1",
			"title":         "Q1 medicines",
			"overAllStatus": "IN_NEGOTIATIONS",
			"technicalSpec": map[string]interface{}{"endDate": b.endDate},
		})
	case r.Method == http.MethodGet && r.URL.Path == "/rfq/rfq-1/comparison":
		io.WriteString(w, `{"topVendors":[
			{"id":"vo-a","vendor":{"id":"vendor-a","companyName":"VendorA","vendorCode":"VA"},"status":"PENDING","rank":1,"round":1,
			 "items":[{"id":"io-a1","rfqItemId":"item-1","costPrice":100,"mrp":120,"status":"ACTION_PENDING"}]},
			{"id":"vo-b","vendor":{"id":"vendor-b","companyName":"VendorB","vendorCode":"VB"},"status":"ACCEPTED","preferedVendor":1,"rank":2,"round":1,
			 "items":[{"id":"io-b1","rfqItemId":"item-1","costPrice":120,"mrp":150,"status":"ACCEPTED"}]}
		]}`)
	case r.Method == http.MethodGet && r.URL.Path == "/rfq/rfq-1/items":
		io.WriteString(w, `{"allItems":{"items":[{"id":"item-1","item":{"id":"p-1","itemCode":"MED001","MasterGeneric":{"name":"Paracetamol 500mg"}}}]}}`)
	case r.Method == http.MethodPost && r.URL.Path == "/rfq/counter-offers/collective":
		var req models.CounterOfferRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.counters = append(b.counters, req)
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodPost && r.URL.Path == "/rfq/arc-approvals/collective":
		var req models.ArcApprovalRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.arcs = append(b.arcs, req)
		if b.failArc {
			w.WriteHeader(http.StatusConflict)
			io.WriteString(w, `{"message":"ARC already submitted"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) received() ([]models.CounterOfferRequest, []models.ArcApprovalRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.CounterOfferRequest(nil), b.counters...), append([]models.ArcApprovalRequest(nil), b.arcs...)
}

func newTestServer(t *testing.T, backend *fakeBackend) *httptest.Server {
	t.Helper()
	upstream := httptest.NewServer(backend)
	t.Cleanup(upstream.Close)

	repo := repository.NewHTTPRFQRepository(upstream.URL, time.Second)
	service := services.NewDeskService(repo, nil, services.NewSessionStore(time.Hour), zap.NewNop())
	handler := handlers.NewDeskHandler(service, zap.NewNop(), 2*time.Second)

	srv := httptest.NewServer(InitRoutes(handler, zap.NewNop(), []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
	}
	return resp, decoded
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{endDate: time.Now().Add(time.Hour)})

	resp, _ := do(t, http.MethodGet, srv.URL+"/api/ping", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestCounterOfferFlow(t *testing.T) {
	backend := &fakeBackend{endDate: time.Now().Add(time.Hour)}
	srv := newTestServer(t, backend)

	resp, view := do(t, http.MethodPost, srv.URL+"/api/rfqs/rfq-1/sessions", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("open status = %d body %v", resp.StatusCode, view)
	}
	session := srv.URL + "/api/sessions/" + view["sessionId"].(string)

	resp, body := do(t, http.MethodPut, session+"/offers", `{"vendorId":"vendor-a","itemId":"item-1","value":150}`)
	if resp.StatusCode != http.StatusBadRequest || body["reason"] == "" {
		t.Fatalf("above cost: status = %d body %v", resp.StatusCode, body)
	}

	resp, _ = do(t, http.MethodPut, session+"/offers", `{"vendorId":"vendor-a","itemId":"item-1","value":"95"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stage status = %d", resp.StatusCode)
	}
	resp, body = do(t, http.MethodDelete, session+"/counter-batch/item-1", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("remove uncollected: status = %d body %v", resp.StatusCode, body)
	}
	resp, _ = do(t, http.MethodPost, session+"/counter-batch/item-1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("collect status = %d", resp.StatusCode)
	}
	resp, body = do(t, http.MethodPost, session+"/submit/counter-offers", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d body %v", resp.StatusCode, body)
	}

	counters, _ := backend.received()
	if len(counters) != 1 {
		t.Fatalf("backend received %d counter batches", len(counters))
	}
	got := counters[0].VendorOffers[0]
	if got.VendorID != "vendor-a" || got.RFQEventID != "rfq-1" || got.RevisedItemPrices[0].RevisedCostPrice != 95 ||
		got.RevisedItemPrices[0].RevisionRemarks != "Counter offer for MED001" {
		t.Fatalf("counter offer = %+v", got)
	}
}

func TestArcFlowWithBackendFailure(t *testing.T) {
	backend := &fakeBackend{endDate: time.Now().Add(time.Hour), failArc: true}
	srv := newTestServer(t, backend)

	_, view := do(t, http.MethodPost, srv.URL+"/api/rfqs/rfq-1/sessions", "")
	session := srv.URL + "/api/sessions/" + view["sessionId"].(string)

	if resp, _ := do(t, http.MethodPut, session+"/priorities", `{"itemId":"item-1","vendorId":"vendor-a","rank":1}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("priority status = %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodPost, session+"/arc-batch/item-1", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("collect arc status = %d", resp.StatusCode)
	}

	resp, body := do(t, http.MethodPost, session+"/submit/arc?userId=buyer-1", "")
	if resp.StatusCode != http.StatusBadGateway || body["reason"] != "ARC already submitted" {
		t.Fatalf("submit status = %d body %v", resp.StatusCode, body)
	}

	_, arcs := backend.received()
	if len(arcs) != 1 {
		t.Fatalf("backend received %d arc batches", len(arcs))
	}
	arc := arcs[0]
	if arc.ApprovedByID != "buyer-1" || len(arc.ItemsWithTopVendors) != 2 {
		t.Fatalf("arc request = %+v", arc)
	}
	if first := arc.ItemsWithTopVendors[0]; first.VendorOfferID != "vo-a" || first.PreferedVendorRank != 1 || first.Remarks != "No remarks provided" {
		t.Fatalf("first approval = %+v", first)
	}

	_, view = do(t, http.MethodGet, session, "")
	if batch, _ := view["arcBatch"].([]interface{}); len(batch) != 1 {
		t.Fatalf("arc batch after failure = %v", view["arcBatch"])
	}
}

func TestExpiredRFQIsReadOnly(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{endDate: time.Now().Add(-time.Hour)})

	_, view := do(t, http.MethodPost, srv.URL+"/api/rfqs/rfq-1/sessions", "")
	if view["readOnly"] != true {
		t.Fatalf("view = %v, want readOnly", view)
	}
	session := srv.URL + "/api/sessions/" + view["sessionId"].(string)

	resp, _ := do(t, http.MethodPost, session+"/arc-batch/item-1", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	resp, _ = do(t, http.MethodPost, session+"/next", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("navigation status = %d", resp.StatusCode)
	}
}

func TestUnknownRFQAndSession(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{endDate: time.Now().Add(time.Hour)})

	if resp, _ := do(t, http.MethodPost, srv.URL+"/api/rfqs/missing/sessions", ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown rfq status = %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodGet, srv.URL+"/api/sessions/missing", ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown session status = %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodGet, srv.URL+"/api/rfqs/rfq-1/submissions?limit=100", ""); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d", resp.StatusCode)
	}
}

func TestExportComparison(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{endDate: time.Now().Add(time.Hour)})

	_, view := do(t, http.MethodPost, srv.URL+"/api/rfqs/rfq-1/sessions", "")
	resp, err := http.Get(srv.URL + "/api/sessions/" + view["sessionId"].(string) + "/export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), "comparison_EV-1.xlsx") {
		t.Fatalf("content disposition = %q", resp.Header.Get("Content-Disposition"))
	}
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/demo"
	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/repo"
	"github.com/hirewatch/hirewatch/pkg/session"
	"github.com/hirewatch/hirewatch/pkg/workflow"
)

// demoServer spins a server over a forced-fallback session, so no
// backend is involved.
func demoServer(t *testing.T, user, pass string) (*Server, *httptest.Server) {
	t.Helper()

	provider := demo.NewProvider()
	store := session.New(nil, provider, session.Options{ForceFallback: true})
	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}

	gw, err := api.New(api.Config{BaseURL: "http://127.0.0.1:1/api", Timeout: 100 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	hub := repo.New(store, gw, provider)
	notes := NewNotificationLog(10)
	runner := workflow.New(workflow.Config{
		Hub:      hub,
		Gateway:  gw,
		Synth:    provider,
		Notifier: notes,
		Delay:    100 * time.Millisecond,
	})

	srv := New(context.Background(), Config{
		Hub:      hub,
		Runner:   runner,
		Notes:    notes,
		Username: user,
		Password: pass,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return res.StatusCode
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	res, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return res.StatusCode
}

func TestStateEndpoint(t *testing.T) {
	_, ts := demoServer(t, "", "")

	var state stateResponse
	if code := getJSON(t, ts.URL+"/api/state", &state); code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if !state.FallbackMode {
		t.Fatal("demo session must report fallback_mode")
	}
	if state.Counts["candidates"] != 3 || state.Counts["offers"] != 2 {
		t.Fatalf("unexpected counts: %v", state.Counts)
	}
	for name, ws := range state.Workflows {
		if ws != workflow.StateIdle {
			t.Fatalf("workflow %s should be idle, got %s", name, ws)
		}
	}
}

func TestCollectionEndpointsFilter(t *testing.T) {
	_, ts := demoServer(t, "", "")

	var roles []hiring.Role
	getJSON(t, ts.URL+"/api/roles?active_only=true", &roles)
	if len(roles) != 2 {
		t.Fatalf("want 2 active roles, got %d", len(roles))
	}

	var all []hiring.Role
	getJSON(t, ts.URL+"/api/roles", &all)
	if len(all) != 3 {
		t.Fatalf("want 3 roles, got %d", len(all))
	}

	var matches []hiring.Match
	getJSON(t, ts.URL+"/api/matches?min_score=70", &matches)
	if len(matches) != 2 {
		t.Fatalf("want 2 matches at 70+, got %d", len(matches))
	}

	if code := getJSON(t, ts.URL+"/api/matches?min_score=abc", nil); code != http.StatusBadRequest {
		t.Fatalf("want 400 for a bad min_score, got %d", code)
	}

	var offers []hiring.Offer
	getJSON(t, ts.URL+"/api/offers?status="+hiring.OfferStatusApproved, &offers)
	if len(offers) != 1 || offers[0].ID != "offer2" {
		t.Fatalf("unexpected approved offers: %v", offers)
	}
}

func TestApproveAndRejectEndpoints(t *testing.T) {
	_, ts := demoServer(t, "", "")

	var offer hiring.Offer
	if code := postJSON(t, ts.URL+"/api/offers/offer1/approve", nil, &offer); code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if offer.Status != hiring.OfferStatusApproved {
		t.Fatalf("want Approved, got %s", offer.Status)
	}

	var errBody map[string]string
	if code := postJSON(t, ts.URL+"/api/offers/ghost/approve", nil, &errBody); code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", code)
	}
	if errBody["detail"] == "" {
		t.Fatal("error responses carry a detail message")
	}

	// an approved offer cannot be rejected
	if code := postJSON(t, ts.URL+"/api/offers/offer1/reject?comments=late", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("want 400 for an illegal transition, got %d", code)
	}
}

func TestWorkflowTriggerEndpoint(t *testing.T) {
	_, ts := demoServer(t, "", "")

	var ack map[string]string
	code := postJSON(t, ts.URL+"/api/workflows/offers", map[string]any{"match_ids": []string{"match1"}}, &ack)
	if code != http.StatusAccepted {
		t.Fatalf("want 202, got %d", code)
	}
	if ack["message"] != "Offer generation started" {
		t.Fatalf("unexpected ack: %v", ack)
	}

	// same workflow is busy until the delayed refresh lands
	if code := postJSON(t, ts.URL+"/api/workflows/offers", map[string]any{}, nil); code != http.StatusConflict {
		t.Fatalf("want 409 while running, got %d", code)
	}

	// the notification feed picks the run up
	deadline := time.After(2 * time.Second)
	for {
		var state stateResponse
		getJSON(t, ts.URL+"/api/state", &state)
		if len(state.Notifications) >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("refresh notification never arrived")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestBasicAuth(t *testing.T) {
	_, ts := demoServer(t, "admin", "hunter2")

	if code := getJSON(t, ts.URL+"/api/state", nil); code != http.StatusUnauthorized {
		t.Fatalf("want 401 without credentials, got %d", code)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/state", nil)
	req.SetBasicAuth("admin", "hunter2")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("want 200 with credentials, got %d", res.StatusCode)
	}
}

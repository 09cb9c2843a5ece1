/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s = %d: %s", path, rec.Code, rec.Body.String())
	}
	return rec
}

func TestAdminEndpoints(t *testing.T) {
	ls := startServer(t, "cat", 4)

	alice := ls.dial(t)
	write(t, alice, "alice\r\n")
	readUntil(t, alice, msgYourGuess)

	errs := make(chan error, 16)
	mux := newAdminRouter(ls.s.cfg, ls.s, errs)

	if body := get(t, mux, "/healthz").Body.String(); body != "Ok\n" {
		t.Errorf("/healthz = %q", body)
	}

	if body := get(t, mux, "/version").Body.String(); body != "wordsrv v"+releaseVersion+"\n" {
		t.Errorf("/version = %q", body)
	}

	rec := get(t, mux, "/status")
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		t.Errorf("/status content type %q", rec.Header().Get("Content-Type"))
	}
	if strings.Contains(rec.Body.String(), "cat") {
		t.Error("/status leaked the word")
	}

	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Turn != "alice" || snap.Pattern != "---" || snap.GuessesLeft != 4 || len(snap.Players) != 1 {
		t.Errorf("/status = %+v", snap)
	}

	if body := get(t, mux, "/players").Body.String(); !strings.Contains(body, "alice") {
		t.Errorf("/players missing alice:\n%s", body)
	}

	rec = get(t, mux, "/qr")
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("/qr content type %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Error("/qr is not a png")
	}

	select {
	case err := <-errs:
		t.Fatalf("handler error: %v", err)
	default:
	}
}

func TestAdminProfileRoutes(t *testing.T) {
	ls := startServer(t, "cat", 4)

	errs := make(chan error, 16)

	off := newAdminRouter(&Config{port: 50007}, ls.s, errs)
	rec := httptest.NewRecorder()
	off.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pprof/heap", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("pprof served without --profile: %d", rec.Code)
	}

	on := newAdminRouter(&Config{port: 50007, profile: true}, ls.s, errs)
	get(t, on, "/pprof/heap")
}

func TestPlayersTable(t *testing.T) {
	out := playersTable(Snapshot{
		Players: []PlayerSnapshot{
			{ID: 2, Name: "bob", Addr: "10.0.0.2:1", HasTurn: true},
			{ID: 1, Name: "alice", Addr: "10.0.0.1:1"},
		},
		Pending: 3,
	})

	bob, alice := strings.Index(out, "bob"), strings.Index(out, "alice")
	if bob < 0 || alice < 0 || bob > alice {
		t.Fatalf("players out of order:\n%s", out)
	}
	if !strings.Contains(out, "*") || !strings.Contains(out, "3") {
		t.Fatalf("missing turn marker or pending count:\n%s", out)
	}
}

func TestHumanReadableSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1000, "1.0 kB"},
		{1500000, "1.5 MB"},
	}

	for _, tt := range tests {
		if got := humanReadableSize(tt.in); got != tt.want {
			t.Errorf("humanReadableSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

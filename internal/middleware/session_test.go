// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"brandforge/internal/campaign"
	"brandforge/internal/media"
	"brandforge/internal/session"
)

func testSessionStore() *session.Store {
	blobs := media.NewStore()
	return session.NewStore(func(id string) *campaign.Workspace {
		return campaign.NewWorkspace(id, nil, nil, nil, nil, blobs)
	})
}

func TestLoadSessionCreatesOnFirstVisit(t *testing.T) {
	store := testSessionStore()

	var got *session.Session
	handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if got == nil {
		t.Fatal("handler should see a session on first visit")
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("first visit should set the session cookie")
	}
	if cookie.Value != got.ID {
		t.Errorf("cookie value: got %q, want %q", cookie.Value, got.ID)
	}
}

func TestLoadSessionReusesExisting(t *testing.T) {
	store := testSessionStore()
	handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(SessionFromCtx(r.Context()).ID))
	}))

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, httptest.NewRequest("GET", "/", nil))
	first := w1.Body.String()

	var cookie *http.Cookie
	for _, c := range w1.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, req)

	if w2.Body.String() != first {
		t.Errorf("second request got session %q, want %q", w2.Body.String(), first)
	}
	if store.Len() != 1 {
		t.Errorf("sessions: got %d, want 1", store.Len())
	}
}

func TestSessionFromCtxWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if SessionFromCtx(req.Context()) != nil {
		t.Error("expected nil session without LoadSession")
	}
}

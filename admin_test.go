package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postLogin(h http.Handler, username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	if username != "" {
		form.Set("username", username)
	}
	if password != "" {
		form.Set("password", password)
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func adminGet(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(adminTokenHeader, token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	_, _, h := newTestApp(t, nil)

	w := postLogin(h, "admin", "s3cret")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/dashboard" {
		t.Errorf("Location = %q", loc)
	}

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			session = c
		}
	}
	if session == nil {
		t.Fatal("no session cookie set")
	}
	if session.Value != testAdminToken || !session.HttpOnly {
		t.Errorf("cookie = %+v", session)
	}

	// The cookie opens the dashboard.
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(session)
	dw := httptest.NewRecorder()
	h.ServeHTTP(dw, req)
	if dw.Code != http.StatusOK || !strings.Contains(dw.Body.String(), "Visit ledger") {
		t.Errorf("dashboard: %d", dw.Code)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     int
	}{
		{"wrong password", "admin", "nope", http.StatusUnauthorized},
		{"wrong username", "root", "s3cret", http.StatusUnauthorized},
		{"missing password", "admin", "", http.StatusBadRequest},
		{"missing both", "", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, h := newTestApp(t, nil)

			w := postLogin(h, tt.username, tt.password)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			for _, c := range w.Result().Cookies() {
				if c.Name == adminCookie && c.Value != "" {
					t.Error("session cookie set on failed login")
				}
			}
		})
	}
}

func TestLoginRateLimit(t *testing.T) {
	_, _, h := newTestApp(t, nil)

	for i := 0; i < loginBurst; i++ {
		if w := postLogin(h, "admin", "wrong"); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, w.Code)
		}
	}

	// Even the right password is refused once the burst is spent.
	if w := postLogin(h, "admin", "s3cret"); w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}

func TestDashboardRedirectsAnonymous(t *testing.T) {
	_, _, h := newTestApp(t, nil)

	w := adminGet(h, "/admin/dashboard", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Errorf("got %d to %q", w.Code, w.Header().Get("Location"))
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	_, _, h := newTestApp(t, nil)

	w := adminGet(h, "/admin/logout", "")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie && (c.Value != "" || c.MaxAge >= 0) {
			t.Errorf("cookie not cleared: %+v", c)
		}
	}
}

func TestAdminStats(t *testing.T) {
	_, _, h := newTestApp(t, nil)
	getVisit(t, h, map[string]string{"X-Forwarded-For": "1.1.1.1"})
	getVisit(t, h, map[string]string{"X-Forwarded-For": "2.2.2.2"})

	if w := adminGet(h, "/admin/api/stats", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous stats: status = %d, want 401", w.Code)
	}

	w := adminGet(h, "/admin/api/stats", testAdminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var stats AdminStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Count != 2 || len(stats.Visitors) != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Backend != "memory" || stats.WriteMode != "serialized" {
		t.Errorf("backend/mode = %q/%q", stats.Backend, stats.WriteMode)
	}
}

func TestAdminExportLedger(t *testing.T) {
	_, _, h := newTestApp(t, nil)
	getVisit(t, h, map[string]string{"X-Forwarded-For": "1.1.1.1"})

	w := adminGet(h, "/admin/export/ledger", testAdminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "visits.json") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	var got struct {
		Count    int64    `json:"count"`
		Visitors []string `json:"visitors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 1 || len(got.Visitors) != 1 || got.Visitors[0] != "1.1.1.1" {
		t.Errorf("export = %+v", got)
	}
}

func TestAdminResetEndpoint(t *testing.T) {
	_, _, h := newTestApp(t, nil)
	getVisit(t, h, map[string]string{"X-Forwarded-For": "1.1.1.1"})

	req := httptest.NewRequest(http.MethodPost, "/admin/api/visits/reset", nil)
	req.Header.Set(adminTokenHeader, testAdminToken)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	_, body := getVisit(t, h, map[string]string{"X-Forwarded-For": "1.1.1.1"})
	if body.Count != 1 || !body.IsNewVisitor {
		t.Errorf("after reset: %+v", body)
	}
}

func TestGeneratedAdminToken(t *testing.T) {
	cfg := testConfig()
	cfg.AdminToken = ""

	a := newAdminAuth(cfg)
	if len(a.token) != 64 {
		t.Errorf("token length = %d, want 64", len(a.token))
	}
	if a.validToken("") {
		t.Error("empty token accepted")
	}
	if !a.validToken(a.token) {
		t.Error("generated token rejected")
	}
}

package visitor

import (
	"net/http"
	"testing"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		mode    Mode
		want    string
	}{
		{
			name: "no headers collapses to unknown",
			want: "unknown",
		},
		{
			name:    "first hop of forwarded-for",
			headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1, 10.0.0.2"},
			want:    "1.2.3.4",
		},
		{
			name: "forwarded-for wins over real ip and cloudflare",
			headers: map[string]string{
				"X-Forwarded-For":  "1.2.3.4",
				"X-Real-IP":        "5.6.7.8",
				"CF-Connecting-IP": "9.9.9.9",
			},
			want: "1.2.3.4",
		},
		{
			name: "real ip wins over cloudflare",
			headers: map[string]string{
				"X-Real-IP":        "5.6.7.8",
				"CF-Connecting-IP": "9.9.9.9",
			},
			want: "5.6.7.8",
		},
		{
			name:    "cloudflare connecting ip",
			headers: map[string]string{"CF-Connecting-IP": "9.9.9.9"},
			want:    "9.9.9.9",
		},
		{
			name:    "empty first hop falls through",
			headers: map[string]string{"X-Forwarded-For": " , 10.0.0.1", "X-Real-IP": "5.6.7.8"},
			want:    "5.6.7.8",
		},
		{
			name:    "development prefix",
			headers: map[string]string{"X-Forwarded-For": "127.0.0.1"},
			mode:    Development,
			want:    "dev-127.0.0.1",
		},
		{
			name: "development prefix on sentinel",
			mode: Development,
			want: "dev-unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			if got := Identity(h, tt.mode); got != tt.want {
				t.Errorf("Identity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"development": Development,
		"DEV":         Development,
		" dev ":       Development,
		"production":  Production,
		"":            Production,
		"staging":     Production,
	}
	for in, want := range tests {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHasher(t *testing.T) {
	var nilHasher *Hasher
	if nilHasher.Hash("1.2.3.4") != "1.2.3.4" {
		t.Error("nil hasher should pass identities through")
	}
	if NewHasher("").Hash("1.2.3.4") != "1.2.3.4" {
		t.Error("empty salt should pass identities through")
	}

	h := NewHasher("pepper")
	a := h.Hash("1.2.3.4")
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %q", a)
	}
	if a != h.Hash("1.2.3.4") {
		t.Error("hash should be stable for the same identity")
	}
	if a == h.Hash("5.6.7.8") {
		t.Error("different identities should not collide")
	}
	if a == NewHasher("salt").Hash("1.2.3.4") {
		t.Error("different salts should produce different digests")
	}
	if h.Hash("dev-1.2.3.4") == a {
		t.Error("development and production identities should stay apart after hashing")
	}
}

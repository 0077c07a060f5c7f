package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vitalworks/vitality/internal/notify"
)

func TestClientSend(t *testing.T) {
	var gotAuth string
	var gotBody sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/emails" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "re_key", "Vitality <noreply@vitalworks.io>")
	err := c.Send(context.Background(), "user@example.com", "subject", "<p>hi</p>")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if gotAuth != "Bearer re_key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if len(gotBody.To) != 1 || gotBody.To[0] != "user@example.com" {
		t.Errorf("to = %v", gotBody.To)
	}
	if gotBody.From != "Vitality <noreply@vitalworks.io>" {
		t.Errorf("from = %q", gotBody.From)
	}
}

func TestClientSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad", "from@example.com")
	if err := c.Send(context.Background(), "to@example.com", "s", "h"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestClientEnabled(t *testing.T) {
	if NewClient("u", "", "f").Enabled() {
		t.Error("expected disabled without API key")
	}
	if !NewClient("u", "key", "f").Enabled() {
		t.Error("expected enabled with API key")
	}
}

func TestCompose(t *testing.T) {
	prev := 400

	tests := []struct {
		name        string
		event       notify.ResultGeneratedEvent
		wantSubject string
		wantInBody  string
	}{
		{
			name:        "first score",
			event:       notify.ResultGeneratedEvent{FirstName: "Ana", Points: 500, MaxForAnswered: 900},
			wantSubject: "Your first Vitality Index score is ready",
			wantInBody:  "Hi Ana",
		},
		{
			name:        "improved score",
			event:       notify.ResultGeneratedEvent{Points: 450, PreviousPoints: &prev},
			wantSubject: "Your Vitality Index score went up",
			wantInBody:  "Congratulations",
		},
		{
			name:        "lower score",
			event:       notify.ResultGeneratedEvent{Points: 350, PreviousPoints: &prev},
			wantSubject: "Your new Vitality Index score is ready",
			wantInBody:  "previously 400",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, html := Compose(tt.event)
			if subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", subject, tt.wantSubject)
			}
			if !strings.Contains(html, tt.wantInBody) {
				t.Errorf("body %q does not contain %q", html, tt.wantInBody)
			}
		})
	}

	// A missing first name falls back to a generic greeting.
	_, html := Compose(notify.ResultGeneratedEvent{Points: 1})
	if !strings.Contains(html, "Hi there") {
		t.Errorf("body %q missing fallback greeting", html)
	}
}

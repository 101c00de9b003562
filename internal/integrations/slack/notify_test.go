package slackbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/slack-go/slack"

	"labeleval/internal/config"
	"labeleval/internal/httpx"
)

type postedMessage struct {
	channel string
	text    string
}

func newMockSlackAPI(t *testing.T, ok bool) (string, *[]postedMessage) {
	t.Helper()

	var posted []postedMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/")
		switch path {
		case "chat.postMessage":
			_ = r.ParseForm()
			posted = append(posted, postedMessage{channel: r.FormValue("channel"), text: r.FormValue("text")})
			if !ok {
				_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "channel": r.FormValue("channel"), "ts": "1700000000.000100"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		}
	}))
	t.Cleanup(server.Close)
	return server.URL + "/api/", &posted
}

func TestNewNotifierDisabledWithoutConfig(t *testing.T) {
	if n := NewNotifier(config.Config{SlackBotToken: "xoxb-test"}); n != nil {
		t.Fatal("expected nil notifier without report channel")
	}
	var n *Notifier
	if err := n.Post(context.Background(), "ignored"); err != nil {
		t.Fatalf("nil notifier Post should be a no-op, got %v", err)
	}
}

func TestNotifierPost(t *testing.T) {
	apiURL, posted := newMockSlackAPI(t, true)
	cfg := config.Config{SlackBotToken: "xoxb-test", ReportChannelID: "C123"}
	n := NewNotifier(cfg, slack.OptionAPIURL(apiURL))

	if err := n.Post(context.Background(), "Emotion: exact 3"); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if len(*posted) != 1 {
		t.Fatalf("expected 1 postMessage call, got %d", len(*posted))
	}
	got := (*posted)[0]
	if got.channel != "C123" || got.text != "Emotion: exact 3" {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestNotifierPostError(t *testing.T) {
	apiURL, _ := newMockSlackAPI(t, false)
	cfg := config.Config{SlackBotToken: "xoxb-test", ReportChannelID: "C404"}
	n := NewNotifier(cfg, slack.OptionAPIURL(apiURL))

	err := n.Post(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "channel_not_found") {
		t.Fatalf("expected channel_not_found error, got %v", err)
	}
}

func TestNotifierUsesConfiguredTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	httpx.ConfigureExternalHTTPClient(1)
	t.Cleanup(func() { httpx.ConfigureExternalHTTPClient(0) })

	cfg := config.Config{SlackBotToken: "xoxb-test", ReportChannelID: "C123"}
	n := NewNotifier(cfg, slack.OptionAPIURL(server.URL+"/api/"))

	start := time.Now()
	err := n.Post(context.Background(), "slow")
	if err == nil {
		t.Fatal("expected Post to fail once the shared client times out")
	}
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Fatalf("Post took %s; the 1s client timeout was not applied", elapsed)
	}
}

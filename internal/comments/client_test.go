package comments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"soundrip/internal/services"
)

func commentPayload(items string) string {
	return `{"items":[` + items + `]}`
}

func commentItem(author, text string, likes int) string {
	return `{"snippet":{"topLevelComment":{"snippet":{` +
		`"authorDisplayName":"` + author + `",` +
		`"textDisplay":"` + text + `",` +
		`"likeCount":` + strconv.Itoa(likes) + `}}}}`
}

func TestFetchSortsByLikes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("videoId"); got != "dQw4w9WgXcQ" {
			t.Errorf("videoId = %q", got)
		}
		if got := query.Get("order"); got != "relevance" {
			t.Errorf("order = %q", got)
		}
		if got := query.Get("textFormat"); got != "plainText" {
			t.Errorf("textFormat = %q", got)
		}
		if got := query.Get("key"); got != "test-key" {
			t.Errorf("key = %q", got)
		}
		w.Write([]byte(commentPayload(
			commentItem("alice", "good video", 3) + "," +
				commentItem("bob", "best comment", 42) + "," +
				commentItem("carol", "meh", 0))))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	records, err := client.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("record count = %d, want 3", len(records))
	}
	if records[0].Author != "bob" || records[0].LikeCount != 42 {
		t.Errorf("top record = %+v, want bob with 42 likes", records[0])
	}
	if records[2].Author != "carol" {
		t.Errorf("last record = %+v, want carol", records[2])
	}
}

func TestFetchTruncatesToMaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("maxResults"); got != "2" {
			t.Errorf("maxResults = %q, want 2", got)
		}
		w.Write([]byte(commentPayload(
			commentItem("a", "one", 1) + "," +
				commentItem("b", "two", 2) + "," +
				commentItem("c", "three", 3))))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, MaxResults: 2})
	records, err := client.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count = %d, want 2", len(records))
	}
	if records[0].LikeCount != 3 || records[1].LikeCount != 2 {
		t.Errorf("kept records %+v, want the two most liked", records)
	}
}

func TestFetchSkipsEmptyComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(commentPayload(
			commentItem("a", "  ", 5) + "," +
				commentItem("b", "real text", 1))))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	records, err := client.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(records) != 1 || records[0].Author != "b" {
		t.Errorf("records = %+v, want only the non-empty one", records)
	}
}

func TestFetchBadURLNoRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.Fetch(context.Background(), "https://example.com/not-a-video")
	if err == nil {
		t.Fatal("expected error for unparseable URL")
	}
	if !errors.Is(err, services.ErrComments) {
		t.Errorf("error = %v, want ErrComments", err)
	}
	if requests != 0 {
		t.Errorf("server received %d requests, want 0", requests)
	}
}

func TestFetchMissingAPIKey(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestFetchAPIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Errorf("error = %v, want ErrTransient for quota exhaustion", err)
	}
}

func TestFetchMaxResultsCapped(t *testing.T) {
	client := NewClient(Config{APIKey: "k", MaxResults: 500})
	if client.maxResults != 100 {
		t.Errorf("maxResults = %d, want capped at 100", client.maxResults)
	}
}

package speech_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"soundrip/internal/services"
	"soundrip/internal/services/speech"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("fake-audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribeUploadsFileAndParsesText(t *testing.T) {
	var gotAuth, gotModel, gotLanguage string
	var gotFile []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			gotFile, _ = io.ReadAll(file)
			file.Close()
		}
		w.Write([]byte(`{"text":" hello from the cloud "}`))
	}))
	defer server.Close()

	client := speech.NewClient(speech.Config{
		APIKey:   "key",
		Endpoint: server.URL,
		Model:    "whisper-1",
		Language: "english",
	})

	text, err := client.Transcribe(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "hello from the cloud" {
		t.Fatalf("unexpected text %q", text)
	}
	if gotAuth != "Bearer key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotModel != "whisper-1" || gotLanguage != "en" {
		t.Fatalf("unexpected form fields model=%q language=%q", gotModel, gotLanguage)
	}
	if string(gotFile) != "fake-audio" {
		t.Fatalf("file payload not uploaded: %q", gotFile)
	}
}

func TestTranscribeRequiresAPIKey(t *testing.T) {
	client := speech.NewClient(speech.Config{})
	_, err := client.Transcribe(context.Background(), writeAudio(t))
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker: %v", err)
	}
}

func TestTranscribeSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	client := speech.NewClient(speech.Config{APIKey: "key", Endpoint: server.URL})
	_, err := client.Transcribe(context.Background(), writeAudio(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected transcription marker: %v", err)
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("diagnostic lost: %v", err)
	}
}

func TestTranscribeSurfacesAPIErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":{"message":"audio too long"}}`))
	}))
	defer server.Close()

	client := speech.NewClient(speech.Config{APIKey: "key", Endpoint: server.URL})
	_, err := client.Transcribe(context.Background(), writeAudio(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "audio too long") {
		t.Fatalf("api error lost: %v", err)
	}
}

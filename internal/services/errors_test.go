package services_test

import (
	"errors"
	"strings"
	"testing"

	"soundrip/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("exit status 1: network error")
	err := services.Wrap(services.ErrProbe, "ytdlp", "probe", "metadata dump failed", inner)
	if !errors.Is(err, services.ErrProbe) {
		t.Fatal("expected probe marker")
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected inner error to be preserved")
	}
	if !strings.Contains(err.Error(), "network error") {
		t.Fatalf("diagnostic text lost: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected default detail, got %v", err)
	}
}

func TestWrapComposesDetail(t *testing.T) {
	err := services.Wrap(services.ErrComments, "comments", "fetch", "http 403", nil)
	want := "comments: fetch: http 403"
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected %q in %v", want, err)
	}
}

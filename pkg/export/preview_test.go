package export

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewPreviewServer(t *testing.T) {
	server := NewPreviewServer(deck(3), Options{Width: 960}, 8080)

	if server == nil {
		t.Fatal("NewPreviewServer returned nil")
	}
	if len(server.cards) != 3 {
		t.Errorf("Expected 3 cards, got %d", len(server.cards))
	}
	if server.Port() != 8080 {
		t.Errorf("Expected port 8080, got %d", server.Port())
	}
	if server.URL() != "http://localhost:8080" {
		t.Errorf("Unexpected URL %s", server.URL())
	}
}

func TestStripHandler_ServesSVG(t *testing.T) {
	server := NewPreviewServer(deck(7), Options{Width: 960, PerView: 3}, 0)

	req := httptest.NewRequest("GET", "/strip.svg?slide=2", nil)
	rec := httptest.NewRecorder()
	server.stripHandler(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Expected SVG content type, got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "translate(-1280,0)") {
		t.Error("Expected slide 2 track offset in SVG")
	}
}

func TestStripHandler_IgnoresOutOfRangeSlide(t *testing.T) {
	server := NewPreviewServer(deck(7), Options{Width: 960, PerView: 3}, 0)

	req := httptest.NewRequest("GET", "/strip.svg?slide=99", nil)
	rec := httptest.NewRecorder()
	server.stripHandler(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected out-of-range slide to fall back, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "translate(0,0)") {
		t.Error("Expected fallback to slide 0")
	}
}

func TestPageHandler_LinksSlides(t *testing.T) {
	server := NewPreviewServer(deck(7), Options{Width: 960, PerView: 3}, 0)

	req := httptest.NewRequest("GET", "/?slide=1", nil)
	rec := httptest.NewRecorder()
	server.pageHandler(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "slide 2 / 3") {
		t.Errorf("Expected slide position in page: %s", body)
	}
	if !strings.Contains(body, "/?slide=2") || !strings.Contains(body, "/?slide=0") {
		t.Error("Expected prev/next links")
	}
}

func TestFindAvailablePort(t *testing.T) {
	port, err := FindAvailablePort(19000, 19100)
	if err != nil {
		t.Fatalf("FindAvailablePort failed: %v", err)
	}
	if port < 19000 || port > 19100 {
		t.Errorf("Port %d outside range", port)
	}
}

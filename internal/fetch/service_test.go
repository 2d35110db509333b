package fetch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// encodeTestJPEG renders a small solid JPEG for serving from test handlers
func encodeTestJPEG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("Failed to encode test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestFetchSuccess(t *testing.T) {
	frame := encodeTestJPEG(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(frame)
	}))
	defer server.Close()

	service := NewService(server.URL, 2*time.Second, zerolog.Nop())

	if service.URL() != server.URL {
		t.Errorf("Expected URL %s, got %s", server.URL, service.URL())
	}

	data, err := service.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !bytes.Equal(data, frame) {
		t.Errorf("Expected %d frame bytes, got %d", len(frame), len(data))
	}
}

func TestFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	service := NewService(server.URL, 2*time.Second, zerolog.Nop())

	_, err := service.Fetch(context.Background())
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}

	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *fetch.Error, got %T", err)
	}

	if fetchErr.Kind != KindBadStatus {
		t.Errorf("Expected kind %s, got %s", KindBadStatus, fetchErr.Kind)
	}

	if fetchErr.Status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", fetchErr.Status)
	}
}

func TestFetchNonImageContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	service := NewService(server.URL, 2*time.Second, zerolog.Nop())

	_, err := service.Fetch(context.Background())
	if err == nil {
		t.Fatal("Expected error for non-image content type")
	}

	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *fetch.Error, got %T", err)
	}

	if fetchErr.Kind != KindBadStatus {
		t.Errorf("Expected kind %s, got %s", KindBadStatus, fetchErr.Kind)
	}

	if fetchErr.ContentType != "text/html" {
		t.Errorf("Expected content type 'text/html' in error, got %q", fetchErr.ContentType)
	}

	// The status line must tell a maintenance page from a feed outage
	if !strings.Contains(fetchErr.Error(), "text/html") {
		t.Errorf("Expected error message to carry the content type, got %q", fetchErr.Error())
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	service := NewService(server.URL, 50*time.Millisecond, zerolog.Nop())

	_, err := service.Fetch(context.Background())
	if err == nil {
		t.Fatal("Expected timeout error")
	}

	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *fetch.Error, got %T", err)
	}

	if fetchErr.Kind != KindTimeout {
		t.Errorf("Expected kind %s, got %s", KindTimeout, fetchErr.Kind)
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	// Grab a port that nothing listens on
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	service := NewService(deadURL, 2*time.Second, zerolog.Nop())

	_, err := service.Fetch(context.Background())
	if err == nil {
		t.Fatal("Expected error for refused connection")
	}

	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *fetch.Error, got %T", err)
	}

	if fetchErr.Kind != KindNetwork {
		t.Errorf("Expected kind %s, got %s", KindNetwork, fetchErr.Kind)
	}
}

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	headers := map[string]string{"Accept": "application/json"}
	client := NewClient(headers)

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.headers["Accept"] != "application/json" {
		t.Error("NewClient() headers not set correctly")
	}
	if client.attempts != 1 {
		t.Errorf("NewClient() attempts = %d, want 1", client.attempts)
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(nil).WithHTTPClient(server.Client())

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientDefaultHeaders(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Default")
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := NewClient(map[string]string{"X-Default": "default"}).WithHTTPClient(server.Client())
	if _, err := client.GetBytes(context.Background(), server.URL); err != nil {
		t.Fatalf("GetBytes() error: %v", err)
	}
	if received != "default" {
		t.Errorf("header = %q, want %q", received, "default")
	}
}

func TestClientGetBytes404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil).WithHTTPClient(server.Client())
	_, err := client.GetBytes(context.Background(), server.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBytes() error = %v, want ErrNotFound", err)
	}
}

func TestClientGetBytes500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(nil).WithHTTPClient(server.Client())
	_, err := client.GetBytes(context.Background(), server.URL)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("GetBytes() error = %v, want ErrNetwork", err)
	}
	var retryErr *RetryableError
	if !errors.As(err, &retryErr) {
		t.Errorf("GetBytes() error should be RetryableError, got %T", err)
	}
}

func TestClientWithRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	base := NewClient(nil).WithHTTPClient(server.Client())
	client := base.WithRetry(3, time.Millisecond)

	data, err := client.GetBytes(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetBytes() error: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("GetBytes() = %q", data)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	if base.attempts != 1 {
		t.Error("WithRetry() must not modify the receiver")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{name: "200 OK", code: 200},
		{name: "204 No Content", code: 204},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "500 Internal Server Error", code: 500, wantErr: true, wantType: ErrNetwork, isRetryErr: true},
		{name: "503 Service Unavailable", code: 503, wantErr: true, wantType: ErrNetwork, isRetryErr: true},
		{name: "400 Bad Request", code: 400, wantErr: true, wantType: ErrNetwork},
		{name: "403 Forbidden", code: 403, wantErr: true, wantType: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			if IsRetryable(err) != tt.isRetryErr {
				t.Errorf("IsRetryable() = %v, want %v", IsRetryable(err), tt.isRetryErr)
			}
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient()
	if client.Timeout != httpTimeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, httpTimeout)
	}
}

func TestClientGetBytesContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(nil).WithHTTPClient(server.Client()).WithRetry(3, time.Hour)
	_, err := client.GetBytes(ctx, server.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("GetBytes() error = %v, want context.DeadlineExceeded", err)
	}
	if IsRetryable(err) {
		t.Error("a cancelled request must not be retryable")
	}
}

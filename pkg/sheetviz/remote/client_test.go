package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.Email != "a@b.c" || req.Password != "pw" {
			t.Errorf("unexpected credentials %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  map[string]string{"id": "u1", "email": "a@b.c", "name": "Ann"},
			"token": "tok-123",
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	user, err := c.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != "u1" || user.Name != "Ann" {
		t.Errorf("unexpected user %+v", user)
	}
	if c.Token() != "tok-123" {
		t.Errorf("expected token to be stored, got %q", c.Token())
	}
}

func TestLoginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "a@b.c", "bad")
	if !errors.Is(err, ErrRemoteFailure) {
		t.Fatalf("expected ErrRemoteFailure, got %v", err)
	}
	var re *RemoteError
	if !errors.As(err, &re) || re.Status != http.StatusBadRequest || re.Message != "Invalid credentials" {
		t.Errorf("unexpected error %#v", err)
	}
}

func TestUploadListDelete(t *testing.T) {
	var stored []FileRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"No token provided"}`))
			return
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/files/upload":
			var rec FileRecord
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			stored = append(stored, rec)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"File saved to database."}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/files/all":
			json.NewEncoder(w).Encode(stored)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/files/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"File not found"}`))
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{"message":"File deleted successfully"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ds, err := models.NewDataset("sales.csv", 42, [][]models.Cell{
		{models.Str("City"), models.Str("Sales")},
		{models.Str("A"), models.Num(10), models.Null()},
		{models.Str("B"), models.Bool(true)},
	})
	if err != nil {
		t.Fatalf("NewDataset failed: %v", err)
	}

	ctx := context.Background()
	if err := New(srv.URL).Upload(ctx, ds); !errors.Is(err, ErrRemoteFailure) {
		t.Errorf("expected unauthenticated upload to fail, got %v", err)
	}

	c := New(srv.URL, WithToken("tok"), WithHTTPClient(srv.Client()))
	if err := c.Upload(ctx, ds); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	list, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 dataset, got %d", len(list))
	}
	got := list[0]
	if got.ID() != ds.ID() || got.Name() != "sales.csv" || got.Size() != 42 {
		t.Errorf("unexpected metadata %q %q %d", got.ID(), got.Name(), got.Size())
	}
	if !got.UploadedAt().Equal(ds.UploadedAt()) {
		t.Errorf("upload time %v, expected %v", got.UploadedAt(), ds.UploadedAt())
	}
	if got.Cell(0, 1) != models.Num(10) || got.Cell(1, 1) != models.Bool(true) || !got.Cell(0, 2).IsEmpty() {
		t.Errorf("unexpected cells %#v", got.Rows())
	}

	if err := c.Delete(ctx, ds.ID()); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	err = c.Delete(ctx, "missing")
	var re *RemoteError
	if !errors.As(err, &re) || re.Status != http.StatusNotFound || re.Op != "delete" {
		t.Errorf("expected 404 remote error, got %v", err)
	}
}

func TestListBadUploadDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","name":"a.csv","uploadDate":"yesterday","headers":["h"],"data":[],"size":1}]`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).List(context.Background())
	if !errors.Is(err, ErrRemoteFailure) {
		t.Errorf("expected ErrRemoteFailure, got %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url).Delete(context.Background(), "x")
	var re *RemoteError
	if !errors.As(err, &re) || re.Status != 0 || re.Err == nil {
		t.Errorf("expected transport error, got %#v", err)
	}
}

func TestParseUploadDate(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
		ok       bool
	}{
		{"2024-03-05T10:20:30.123Z", time.Date(2024, 3, 5, 10, 20, 30, 123000000, time.UTC), true},
		{"2024-03-05T10:20:30+02:00", time.Date(2024, 3, 5, 8, 20, 30, 0, time.UTC), true},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, true},
		{"05/03/2024", time.Time{}, false},
	}

	for _, tt := range tests {
		got, err := parseUploadDate(tt.input)
		if (err == nil) != tt.ok || (tt.ok && !got.Equal(tt.expected)) {
			t.Errorf("parseUploadDate(%q) = (%v, %v), expected %v", tt.input, got, err, tt.expected)
		}
	}
}

package wordpress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gcrc/newsletter-agent/internal/cache"
	"github.com/gcrc/newsletter-agent/internal/models"
)

// fakeWordPress is an in-memory stand-in for the WordPress REST API. It
// tracks term creations so tests can assert the get-or-create path only
// creates once.
type fakeWordPress struct {
	mu          sync.Mutex
	terms       map[string]map[string]int // taxonomy -> name -> id
	nextTermID  int
	termCreates int
	lastPost    map[string]any
	postStatus  int
	authUser    string
}

func newFakeWordPress() *fakeWordPress {
	return &fakeWordPress{
		terms:      map[string]map[string]int{"categories": {}, "tags": {}},
		nextTermID: 1,
		postStatus: http.StatusCreated,
		authUser:   "gcrc-editor",
	}
}

func (f *fakeWordPress) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/wp-json/wp/v2/users/me", func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		if !ok || user != f.authUser {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"rest_not_logged_in"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 7, "name": user})
	})

	mux.HandleFunc("/wp-json/wp/v2/media", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 55})
	})

	mux.HandleFunc("/wp-json/wp/v2/posts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "status": r.URL.Query().Get("status")}})
			return
		}
		var post map[string]any
		json.NewDecoder(r.Body).Decode(&post)
		f.lastPost = post
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.postStatus)
		if f.postStatus == http.StatusCreated {
			json.NewEncoder(w).Encode(map[string]any{"id": 101, "link": "https://example.com/?p=101"})
		} else {
			w.Write([]byte(`{"code":"rest_cannot_create"}`))
		}
	})

	for _, taxonomy := range []string{"categories", "tags"} {
		taxonomy := taxonomy
		mux.HandleFunc("/wp-json/wp/v2/"+taxonomy, func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			switch r.Method {
			case http.MethodGet:
				if search := r.URL.Query().Get("search"); search != "" {
					matches := []map[string]any{}
					if id, ok := f.terms[taxonomy][search]; ok {
						matches = append(matches, map[string]any{"id": id, "name": search})
					}
					json.NewEncoder(w).Encode(matches)
					return
				}
				all := []map[string]any{}
				for name, id := range f.terms[taxonomy] {
					all = append(all, map[string]any{"id": id, "name": name})
				}
				json.NewEncoder(w).Encode(all)
			case http.MethodPost:
				var body struct {
					Name string `json:"name"`
				}
				json.NewDecoder(r.Body).Decode(&body)
				id := f.nextTermID
				f.nextTermID++
				f.terms[taxonomy][body.Name] = id
				f.termCreates++
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(map[string]any{"id": id, "name": body.Name})
			}
		})
	}

	return httptest.NewServer(mux)
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, "gcrc-editor", "app-password", cache.NewMemoryCache())
}

func TestConnectionSuccess(t *testing.T) {
	wp := newFakeWordPress()
	srv := wp.server(t)
	defer srv.Close()

	status := newTestClient(srv).TestConnection(context.Background())
	if !status.Success {
		t.Fatalf("status = %+v", status)
	}
	if !strings.Contains(string(status.User), "gcrc-editor") {
		t.Errorf("User = %s", status.User)
	}
}

func TestConnectionAuthFailure(t *testing.T) {
	wp := newFakeWordPress()
	srv := wp.server(t)
	defer srv.Close()

	client := NewClient(srv.URL, "wrong-user", "bad", cache.NewMemoryCache())
	status := client.TestConnection(context.Background())
	if status.Success {
		t.Fatal("expected failure for bad credentials")
	}
	if !strings.Contains(status.Error, "401") {
		t.Errorf("Error = %q", status.Error)
	}
	if status.Details == "" {
		t.Error("Details should carry the response body")
	}
}

func TestUploadImage(t *testing.T) {
	wp := newFakeWordPress()
	srv := wp.server(t)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "header.png")
	if err := os.WriteFile(path, []byte("png bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	id := newTestClient(srv).UploadImage(context.Background(), path, "A county road")
	if id == nil || *id != 55 {
		t.Fatalf("id = %v, want 55", id)
	}
}

func TestUploadImageFailureReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "header.png")
	if err := os.WriteFile(path, []byte("png bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	if id := newTestClient(srv).UploadImage(context.Background(), path, "alt"); id != nil {
		t.Fatalf("id = %v, want nil on failure", *id)
	}
}

func TestCreateDraftPost(t *testing.T) {
	wp := newFakeWordPress()
	srv := wp.server(t)
	defer srv.Close()

	mediaID := 55
	content := models.NewsletterContent{
		Title:           "County Approves Road Budget",
		Body:            "<p>The board voted.</p>",
		Excerpt:         "The board approved the budget.",
		Category:        "Policy",
		Tags:            []string{"Roads", "Budget"},
		Sources:         []models.Source{{Title: "Board of Supervisors"}},
		SuggestedImages: []string{"A rural road"},
	}

	result, err := newTestClient(srv).CreateDraftPost(context.Background(), content, &mediaID)
	if err != nil {
		t.Fatalf("CreateDraftPost: %v", err)
	}
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
	if result.PostID == nil || *result.PostID != 101 {
		t.Errorf("PostID = %v", result.PostID)
	}
	wantEdit := srv.URL + "/wp-admin/post.php?post=101&action=edit"
	if result.EditURL != wantEdit {
		t.Errorf("EditURL = %q, want %q", result.EditURL, wantEdit)
	}
	if result.PreviewURL != "https://example.com/?p=101" {
		t.Errorf("PreviewURL = %q", result.PreviewURL)
	}

	post := wp.lastPost
	if post["status"] != "draft" {
		t.Errorf("status = %v, want draft", post["status"])
	}
	if post["featured_media"] != float64(55) {
		t.Errorf("featured_media = %v", post["featured_media"])
	}
	meta, ok := post["meta"].(map[string]any)
	if !ok || meta["ai_generated"] != true {
		t.Errorf("meta = %v", post["meta"])
	}
	if cats, ok := post["categories"].([]any); !ok || len(cats) != 1 {
		t.Errorf("categories = %v", post["categories"])
	}
	if tags, ok := post["tags"].([]any); !ok || len(tags) != 2 {
		t.Errorf("tags = %v", post["tags"])
	}
}

func TestCreateDraftPostDefaultsCategory(t *testing.T) {
	wp := newFakeWordPress()
	srv := wp.server(t)
	defer srv.Close()

	_, err := newTestClient(srv).CreateDraftPost(context.Background(), models.NewsletterContent{
		Title: "T", Body: "<p>b</p>",
	}, nil)
	if err != nil {
		t.Fatalf("CreateDraftPost: %v", err)
	}
	if _, ok := wp.terms["categories"]["Newsletter"]; !ok {
		t.Errorf("expected Newsletter category to be created, terms = %v", wp.terms["categories"])
	}
}

func TestCreateDraftPostFailureIsNotAnError(t *testing.T) {
	wp := newFakeWordPress()
	wp.postStatus = http.StatusForbidden
	srv := wp.server(t)
	defer srv.Close()

	result, err := newTestClient(srv).CreateDraftPost(context.Background(), models.NewsletterContent{
		Title: "T", Body: "<p>b</p>",
	}, nil)
	if err != nil {
		t.Fatalf("non-201 must not surface as a transport error: %v", err)
	}
	if result.Success {
		t.Fatal("result should be unsuccessful")
	}
	if result.Details == "" {
		t.Error("Details should carry the response body")
	}
}

func TestGetOrCreateTermIdempotent(t *testing.T) {
	wp := newFakeWordPress()
	srv := wp.server(t)
	defer srv.Close()

	client := newTestClient(srv)
	first := client.getOrCreateTerm(context.Background(), "tags", "Roads")
	if first == nil {
		t.Fatal("first resolution returned nil")
	}
	second := client.getOrCreateTerm(context.Background(), "tags", "Roads")
	if second == nil || *second != *first {
		t.Fatalf("second = %v, want %d", second, *first)
	}
	if wp.termCreates != 1 {
		t.Errorf("termCreates = %d, want 1", wp.termCreates)
	}

	// A client with a cold cache still finds the existing term via search.
	fresh := NewClient(srv.URL, "gcrc-editor", "app-password", cache.NewMemoryCache())
	third := fresh.getOrCreateTerm(context.Background(), "tags", "Roads")
	if third == nil || *third != *first {
		t.Fatalf("third = %v, want %d", third, *first)
	}
	if wp.termCreates != 1 {
		t.Errorf("termCreates = %d after cold-cache lookup, want 1", wp.termCreates)
	}
}

func TestListDraftPostsFiltersByStatus(t *testing.T) {
	wp := newFakeWordPress()
	srv := wp.server(t)
	defer srv.Close()

	body, status, err := newTestClient(srv).ListDraftPosts(context.Background())
	if err != nil {
		t.Fatalf("ListDraftPosts: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if !strings.Contains(string(body), `"status":"draft"`) {
		t.Errorf("body = %s, want drafts filter echoed", body)
	}
}

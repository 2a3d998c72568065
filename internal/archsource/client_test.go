package archsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchPKGBUILD_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "firefox") {
			t.Errorf("expected firefox in path, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pkgname=firefox\npkgver=100.0\npkgrel=1\n"))
	}))
	defer server.Close()

	c := NewClient()
	c.PKGBUILDBaseURL = server.URL

	content, err := c.FetchPKGBUILD(context.Background(), "firefox")
	if err != nil {
		t.Fatalf("FetchPKGBUILD() failed: %v", err)
	}
	if !strings.Contains(content, "pkgname=firefox") {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestFetchPKGBUILD_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient()
	c.PKGBUILDBaseURL = server.URL

	_, err := c.FetchPKGBUILD(context.Background(), "nonexistent")
	if err == nil {
		t.Fatal("expected an error for HTTP 404")
	}
}

func TestFetchPackageList_Pagination(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		if page == "1" {
			w.Write([]byte(`{"results":[` + strings.Repeat(`{"pkgname":"pkg","pkgver":"1","pkgrel":"1","pkgdesc":"d","repo":"Core","arch":"x86_64"},`, PageSize-1) + `{"pkgname":"pkg","pkgver":"1","pkgrel":"1","pkgdesc":"d","repo":"Core","arch":"x86_64"}]}`))
			return
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	c := NewClient()
	c.SearchBaseURL = server.URL

	packages, err := c.FetchPackageList(context.Background(), "Core")
	if err != nil {
		t.Fatalf("FetchPackageList() failed: %v", err)
	}
	if len(packages) != PageSize {
		t.Errorf("got %d packages, want %d", len(packages), PageSize)
	}
	if requests != 2 {
		t.Errorf("expected 2 requests (full page then short page), got %d", requests)
	}
}

func TestFetchPackageList_ShortPageStopsImmediately(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"pkgname":"onepkg","pkgver":"1","pkgrel":"1","pkgdesc":"d","repo":"Extra","arch":"x86_64"}]}`))
	}))
	defer server.Close()

	c := NewClient()
	c.SearchBaseURL = server.URL

	packages, err := c.FetchPackageList(context.Background(), "Extra")
	if err != nil {
		t.Fatalf("FetchPackageList() failed: %v", err)
	}
	if len(packages) != 1 {
		t.Errorf("got %d packages, want 1", len(packages))
	}
}

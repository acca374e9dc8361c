package gist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestListGists はGist一覧取得を検証する。
func TestListGists(t *testing.T) {
	t.Parallel()

	t.Run("Gist一覧を取得できること", func(t *testing.T) {
		t.Parallel()

		var path, accept, userAgent string
		var ts *httptest.Server
		ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			accept = r.Header.Get("Accept")
			userAgent = r.Header.Get("User-Agent")
			fmt.Fprintf(w, `[{"id":"g1","url":"%[1]s/gists/g1","files":{"b.txt":{"filename":"b.txt","type":"text/plain","language":null,"raw_url":"%[1]s/raw/b","size":3},"a.js":{"filename":"a.js","type":"application/javascript","language":"JavaScript","raw_url":"%[1]s/raw/a","size":5}}}]`, ts.URL)
		}))
		defer ts.Close()

		client := NewClient(Config{APIBase: ts.URL, UserAgent: "gistrelay-test"})
		gists, err := client.ListGists(context.Background(), "octocat")
		if err != nil {
			t.Fatalf("ListGists()でエラーが発生: %v", err)
		}

		if path != "/users/octocat/gists" {
			t.Errorf("Path = %q, want %q", path, "/users/octocat/gists")
		}
		if accept != "application/vnd.github+json" {
			t.Errorf("Accept = %q", accept)
		}
		if userAgent != "gistrelay-test" {
			t.Errorf("User-Agent = %q", userAgent)
		}
		if len(gists) != 1 {
			t.Fatalf("len(gists) = %d, want 1", len(gists))
		}
		first, ok := gists[0].Files.First()
		if !ok || first.Filename != "b.txt" {
			t.Errorf("先頭ファイル = %+v, want b.txt", first)
		}
	})

	t.Run("Gistが無い場合は空の一覧を返すこと", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer ts.Close()

		gists, err := NewClient(Config{APIBase: ts.URL}).ListGists(context.Background(), "empty")
		if err != nil {
			t.Fatalf("ListGists()でエラーが発生: %v", err)
		}
		if len(gists) != 0 {
			t.Errorf("len(gists) = %d, want 0", len(gists))
		}
	})

	t.Run("構造が不正なGistが含まれていても一覧全体は失敗しないこと", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`[{"id":"bad","files":{"x":{"filename":"x","size":1}}},{"files":{}},{"id":"good","files":{"a.txt":{"filename":"a.txt","raw_url":"https://example.com/a.txt","size":1}}}]`))
		}))
		defer ts.Close()

		gists, err := NewClient(Config{APIBase: ts.URL}).ListGists(context.Background(), "octocat")
		if err != nil {
			t.Fatalf("ListGists()でエラーが発生: %v", err)
		}
		if len(gists) != 3 {
			t.Fatalf("len(gists) = %d, want 3", len(gists))
		}
		if gists[2].ID != "good" {
			t.Errorf("gists[2].ID = %q, want %q", gists[2].ID, "good")
		}
	})

	t.Run("ユーザー名がパスエスケープされること", func(t *testing.T) {
		t.Parallel()

		var rawPath string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawPath = r.URL.EscapedPath()
			w.Write([]byte(`[]`))
		}))
		defer ts.Close()

		if _, err := NewClient(Config{APIBase: ts.URL}).ListGists(context.Background(), "a b?c"); err != nil {
			t.Fatalf("ListGists()でエラーが発生: %v", err)
		}
		if rawPath != "/users/a%20b%3Fc/gists" {
			t.Errorf("EscapedPath = %q", rawPath)
		}
	})

	errorCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "上流が404を返した場合はErrUpstreamになること",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "上流が500を返した場合はErrUpstreamになること",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "不正なJSONの場合はErrUpstreamになること",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`<html>`))
			},
		},
		{
			name: "配列以外のJSONの場合はErrUpstreamになること",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"message":"API rate limit exceeded"}`))
			},
		},
	}

	for _, tc := range errorCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ts := httptest.NewServer(tc.handler)
			defer ts.Close()

			_, err := NewClient(Config{APIBase: ts.URL}).ListGists(context.Background(), "octocat")
			if !errors.Is(err, ErrUpstream) {
				t.Fatalf("ErrUpstreamが返るべきだが、%vが返った", err)
			}
		})
	}

	t.Run("タイムアウトした場合はErrUpstreamになること", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer ts.Close()
		defer close(release)

		client := NewClient(Config{APIBase: ts.URL, Timeout: 50 * time.Millisecond})
		if _, err := client.ListGists(context.Background(), "slow"); !errors.Is(err, ErrUpstream) {
			t.Fatalf("ErrUpstreamが返るべきだが、%vが返った", err)
		}
	})
}

// TestFetchRaw はファイル本文の取得を検証する。
func TestFetchRaw(t *testing.T) {
	t.Parallel()

	t.Run("本文をバイト単位でそのまま取得できること", func(t *testing.T) {
		t.Parallel()

		content := "line1\r\nline2\n\ttabbed ✓"
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(content))
		}))
		defer ts.Close()

		body, err := NewClient(Config{}).FetchRaw(context.Background(), ts.URL+"/raw/file")
		if err != nil {
			t.Fatalf("FetchRaw()でエラーが発生: %v", err)
		}
		if string(body) != content {
			t.Errorf("body = %q, want %q", body, content)
		}
	})

	t.Run("上流が失敗した場合はErrUpstreamになること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer ts.Close()

		if _, err := NewClient(Config{}).FetchRaw(context.Background(), ts.URL+"/raw/file"); !errors.Is(err, ErrUpstream) {
			t.Fatalf("ErrUpstreamが返るべきだが、%vが返った", err)
		}
	})
}

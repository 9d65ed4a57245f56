package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetFollowsInterstitial(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/gate", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<meta http-equiv="refresh" content="0; url=%s/real">`, srv.URL)
	})
	mux.HandleFunc("/real", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>Jane Doe profile</body></html>`)
	})

	f := NewFetcher(WithHTTPClient(srv.Client()))
	body, err := f.Get(context.Background(), srv.URL+"/gate")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !strings.Contains(string(body), "Jane Doe profile") {
		t.Errorf("Get() body = %q, want the destination document", body)
	}
}

func TestGetRelativeInterstitial(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/gate", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<script>window.location.href = "/real";</script>`)
	})
	mux.HandleFunc("/real", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>destination</body></html>`)
	})

	f := NewFetcher(WithHTTPClient(srv.Client()))
	body, err := f.Get(context.Background(), srv.URL+"/gate")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !strings.Contains(string(body), "destination") {
		t.Errorf("Get() body = %q, want the destination document", body)
	}
}

func TestGetInterstitialLoop(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/loop", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<meta http-equiv="refresh" content="0; url=%s/loop">`, srv.URL)
	})

	f := NewFetcher(WithHTTPClient(srv.Client()))
	if _, err := f.Get(context.Background(), srv.URL+"/loop"); err == nil {
		t.Fatal("Get() on a redirect loop succeeded, want error")
	}
}

func TestGetBlockedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>Our systems have detected unusual traffic from your computer network</body></html>`)
	}))
	defer srv.Close()

	f := NewFetcher(WithHTTPClient(srv.Client()))
	if _, err := f.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("Get() on a captcha wall succeeded, want error")
	}
}

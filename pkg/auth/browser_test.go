package auth

import (
	"context"
	"testing"
)

func TestCookiesFromEnv(t *testing.T) {
	t.Setenv("NAMESIFT_COOKIES_GOOGLE", "SID=abc123; NID=xyz; malformed")
	got := cookiesFromEnv("google")
	if got["SID"] != "abc123" || got["NID"] != "xyz" {
		t.Errorf("cookiesFromEnv() = %v, want SID and NID parsed", got)
	}
	if _, ok := got["malformed"]; ok {
		t.Error("cookiesFromEnv() kept a pair without =")
	}
}

func TestCookiesEnvOverridesBrowser(t *testing.T) {
	t.Setenv("NAMESIFT_COOKIES_INSTAGRAM", "sessionid=env-session")
	s := NewBrowserSource(nil)
	got, err := s.Cookies(context.Background(), "instagram")
	if err != nil {
		t.Fatalf("Cookies() error = %v", err)
	}
	if got["sessionid"] != "env-session" {
		t.Errorf("Cookies() = %v, want environment cookie to win", got)
	}
}

func TestCookiesUnknownSite(t *testing.T) {
	s := NewBrowserSource(nil)
	got, err := s.Cookies(context.Background(), "myspace")
	if err != nil {
		t.Fatalf("Cookies() error = %v", err)
	}
	if got != nil {
		t.Errorf("Cookies() = %v for unknown site, want nil", got)
	}
}

package httpcache

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestDelayForBreatherEveryFifthRequest(t *testing.T) {
	r := newGlobalRateLimiter()
	const domain = "www.google.com"

	for i := 1; i <= 10; i++ {
		got := r.delayFor(domain)
		want := r.minDelay
		if i%r.everyNth == 0 {
			want = r.breather
		}
		if got != want {
			t.Errorf("delayFor() request %d = %v, want %v", i, got, want)
		}
	}
}

func TestDelayForCountsDomainsIndependently(t *testing.T) {
	r := newGlobalRateLimiter()
	for range 4 {
		r.delayFor("www.google.com")
	}
	if got := r.delayFor("www.bing.com"); got != r.minDelay {
		t.Errorf("delayFor() first bing request = %v, want base delay %v", got, r.minDelay)
	}
	if got := r.delayFor("www.google.com"); got != r.breather {
		t.Errorf("delayFor() fifth google request = %v, want breather %v", got, r.breather)
	}
}

func TestPenalizeGrowsDomainDelay(t *testing.T) {
	r := newGlobalRateLimiter()
	const rawURL = "https://www.google.com/search?q=jane"

	r.Penalize(rawURL, nil)
	if got := r.delayFor("www.google.com"); got != r.minDelay+r.penalty {
		t.Errorf("delayFor() after one penalty = %v, want %v", got, r.minDelay+r.penalty)
	}

	r.Penalize(rawURL, nil)
	if got := r.delayFor("www.google.com"); got != r.minDelay+2*r.penalty {
		t.Errorf("delayFor() after two penalties = %v, want %v", got, r.minDelay+2*r.penalty)
	}

	if got := r.delayFor("www.bing.com"); got != r.minDelay {
		t.Errorf("delayFor() for unpenalized domain = %v, want %v", got, r.minDelay)
	}
}

func TestDelayForCapped(t *testing.T) {
	r := newGlobalRateLimiter()
	const rawURL = "https://www.google.com/search"

	for range 20 {
		r.Penalize(rawURL, nil)
	}
	if got := r.delayFor("www.google.com"); got != r.maxDelay {
		t.Errorf("delayFor() after heavy penalties = %v, want cap %v", got, r.maxDelay)
	}
}

func TestPenalizeIgnoresBadURL(t *testing.T) {
	r := newGlobalRateLimiter()
	r.Penalize("::not-a-url", nil)
	if got := r.delayFor("www.google.com"); got != r.minDelay {
		t.Errorf("delayFor() after bad-URL penalty = %v, want %v", got, r.minDelay)
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "429", err: &HTTPError{StatusCode: http.StatusTooManyRequests}, want: true},
		{name: "404", err: &HTTPError{StatusCode: http.StatusNotFound}, want: false},
		{name: "plain error", err: errors.New("connection reset"), want: false},
		{name: "nil", err: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimited(tt.err); got != tt.want {
				t.Errorf("IsRateLimited(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestURLToKeyStable(t *testing.T) {
	a := URLToKey("https://www.google.com/search?q=jane")
	b := URLToKey("https://www.google.com/search?q=jane")
	c := URLToKey("https://www.google.com/search?q=john")
	if a != b {
		t.Error("URLToKey() not deterministic for identical URLs")
	}
	if a == c {
		t.Error("URLToKey() collides for different URLs")
	}
}

// Keep the limiter's tuning visible: the base delay stays above one
// second and the cap bounds every computed delay.
func TestLimiterTuning(t *testing.T) {
	r := newGlobalRateLimiter()
	if r.minDelay < time.Second {
		t.Errorf("minDelay = %v, want at least 1s", r.minDelay)
	}
	if r.breather <= r.minDelay {
		t.Errorf("breather %v not longer than base delay %v", r.breather, r.minDelay)
	}
	if r.maxDelay < r.breather {
		t.Errorf("maxDelay %v below breather %v", r.maxDelay, r.breather)
	}
}

package namesift

import (
	"context"
	"testing"
)

func TestSearchWithoutInputs(t *testing.T) {
	results := Search(context.Background(), "")
	if len(results) != 1 {
		t.Fatalf("Search(\"\") returned %d results, want 1", len(results))
	}
	if results[0].Source != "No Search Parameters" {
		t.Errorf("Search(\"\") result = %q, want the no-parameters entry", results[0].Source)
	}
}

func TestActivitiesOffline(t *testing.T) {
	got := Activities(context.Background(), "Jane Doe", []string{"instagram"})
	if len(got) != 4 {
		t.Fatalf("Activities() returned %d entries, want 4", len(got))
	}
	for _, a := range got {
		if a.ActivityType == "" {
			t.Errorf("activity %q missing activity type", a.Source)
		}
	}
}

func TestNewPipeline(t *testing.T) {
	if NewPipeline() == nil {
		t.Fatal("NewPipeline() = nil")
	}
}

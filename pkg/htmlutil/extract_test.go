package htmlutil

import "testing"

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"tags", "<p>hello <b>world</b></p>", "hello world"},
		{"entities", "Jane &amp; John", "Jane & John"},
		{"whitespace", "<div>\n  hello\n\n  world\n</div>", "hello world"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.in); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"title tag", `<html><head><title>Jane Doe | LinkedIn</title></head></html>`, "Jane Doe | LinkedIn"},
		{"og fallback", `<meta property="og:title" content="Jane Doe">`, "Jane Doe"},
		{"h1 fallback", `<body><h1>Jane Doe's Page</h1></body>`, "Jane Doe's Page"},
		{"none", `<body><p>nothing</p></body>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.in); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	in := `<meta name="description" content="Profile of Jane Doe">`
	if got := Description(in); got != "Profile of Jane Doe" {
		t.Errorf("Description() = %q, want %q", got, "Profile of Jane Doe")
	}
}

func TestDecodeHTMLEntities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"named", "Doe &amp; Smith", "Doe & Smith"},
		{"numeric", "Jane&#39;s profile", "Jane's profile"},
		{"quotes", "&quot;Jane Doe&quot;", `"Jane Doe"`},
		{"already plain", "Jane Doe", "Jane Doe"},
		{"single pass only", "&amp;quot;Jane&amp;quot;", "&quot;Jane&quot;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeHTMLEntities(tt.in); got != tt.want {
				t.Errorf("DecodeHTMLEntities(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound("Sorry, this Page Not Found") {
		t.Error("IsNotFound() = false for a not-found page")
	}
	if IsNotFound("Jane Doe - Software Engineer") {
		t.Error("IsNotFound() = true for a normal page")
	}
}

func TestIsBlockedPage(t *testing.T) {
	blocked := `<html>Our systems have detected unusual traffic from your computer network.</html>`
	if !IsBlockedPage(blocked) {
		t.Error("IsBlockedPage() = false for a traffic-check page")
	}
	normal := `<html><div class="g"><h3>Jane Doe</h3></div></html>`
	if IsBlockedPage(normal) {
		t.Error("IsBlockedPage() = true for a results page")
	}
}

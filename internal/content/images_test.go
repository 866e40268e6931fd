package content

import "testing"

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty means no image", raw: "", want: ""},
		{name: "absolute http untouched", raw: "http://a/b.png", want: "http://a/b.png"},
		{name: "absolute https untouched", raw: "https://cdn.example.org/robin.jpg", want: "https://cdn.example.org/robin.jpg"},
		{name: "root relative untouched", raw: "/images/robin.jpg", want: "/images/robin.jpg"},
		{name: "bare filename joined", raw: "robin.jpg", want: "/images/robin.jpg"},
		{name: "legacy images prefix stripped", raw: "images/robin.jpg", want: "/images/robin.jpg"},
		{name: "legacy static prefix stripped", raw: "static/robin.jpg", want: "/images/robin.jpg"},
		{name: "stacked legacy prefixes stripped", raw: "static/images/robin.jpg", want: "/images/robin.jpg"},
		{name: "nested name under legacy prefix", raw: "img/warblers/yellow.jpg", want: "/images/warblers/yellow.jpg"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveImageURL(tc.raw, "/images"); got != tc.want {
				t.Fatalf("ResolveImageURL(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestResolveImageURLIsIdempotent(t *testing.T) {
	inputs := []string{
		"robin.jpg",
		"images/robin.jpg",
		"static/robin.jpg",
		"/images/robin.jpg",
		"http://a/b.png",
		"https://cdn.example.org/robin.jpg",
	}
	for _, raw := range inputs {
		once := ResolveImageURL(raw, "/images")
		twice := ResolveImageURL(once, "/images")
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestResolveImageURLCustomBase(t *testing.T) {
	if got := ResolveImageURL("robin.jpg", "/assets/birds/"); got != "/assets/birds/robin.jpg" {
		t.Fatalf("custom base join = %q, want exactly one separator", got)
	}
	if got := ResolveImageURL("robin.jpg", ""); got != "/images/robin.jpg" {
		t.Fatalf("empty base should default to /images, got %q", got)
	}
	if got := ResolveImageURL("robin.jpg", "https://cdn.example.org/birds"); got != "https://cdn.example.org/birds/robin.jpg" {
		t.Fatalf("absolute base join = %q", got)
	}
}

func TestResolveImageURLRootsRelativeBase(t *testing.T) {
	once := ResolveImageURL("robin.jpg", "birdpics")
	if once != "/birdpics/robin.jpg" {
		t.Fatalf("relative base resolved to %q, want /birdpics/robin.jpg", once)
	}
	twice := ResolveImageURL(once, "birdpics")
	if once != twice {
		t.Fatalf("relative base not idempotent: first %q, second %q", once, twice)
	}
}

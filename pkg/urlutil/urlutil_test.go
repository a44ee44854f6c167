package urlutil_test

import (
	"testing"

	"github.com/falcongraph/crawler/pkg/urlutil"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  urlutil.Canonical
		ok    bool
	}{
		{"basic https", "https://Example.com/Guide", urlutil.Canonical{Scheme: "https", Host: "example.com", Path: "/Guide"}, true},
		{"path-less defaults to root", "https://example.com", urlutil.Canonical{Scheme: "https", Host: "example.com", Path: "/"}, true},
		{"http scheme", "http://example.com/a", urlutil.Canonical{Scheme: "http", Host: "example.com", Path: "/a"}, true},
		{"no scheme separator", "example.com/a", urlutil.Canonical{}, false},
		{"unsupported scheme", "ftp://example.com/a", urlutil.Canonical{}, false},
		{"empty host", "https:///a", urlutil.Canonical{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := urlutil.Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	canonical := "https://example.com/guide/page"
	parsed, ok := urlutil.Parse(canonical)
	assert.True(t, ok)
	assert.Equal(t, canonical, parsed.String())
}

func TestStripFragment(t *testing.T) {
	assert.Equal(t, "https://example.com/a", urlutil.StripFragment("https://example.com/a#section"))
	assert.Equal(t, "https://example.com/a", urlutil.StripFragment("https://example.com/a"))
}

func TestMakeAbsolute(t *testing.T) {
	base := urlutil.Canonical{Scheme: "https", Host: "example.com", Path: "/docs/guide"}

	tests := []struct {
		name string
		href string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"mailto", "mailto:a@example.com", ""},
		{"javascript", "javascript:void(0)", ""},
		{"fragment only", "#section", ""},
		{"absolute url", "https://other.com/x", "https://other.com/x"},
		{"absolute url with fragment", "https://other.com/x#y", "https://other.com/x"},
		{"protocol relative", "//other.com/x", "https://other.com/x"},
		{"root relative", "/a/b", "https://example.com/a/b"},
		{"directory relative", "page2", "https://example.com/docs/page2"},
		{"directory relative dotted", "../up", "https://example.com/docs/../up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urlutil.MakeAbsolute(base, tt.href))
		})
	}
}

func TestMakeAbsoluteIdempotent(t *testing.T) {
	base := urlutil.Canonical{Scheme: "https", Host: "example.com", Path: "/docs/guide"}
	first := urlutil.MakeAbsolute(base, "https://other.com/x#y")
	second := urlutil.MakeAbsolute(base, first)
	assert.Equal(t, first, second)
}

func TestMakeAbsolutePathlessBase(t *testing.T) {
	base := urlutil.Canonical{Scheme: "https", Host: "example.com", Path: "/"}
	assert.Equal(t, "https://example.com/a", urlutil.MakeAbsolute(base, "a"))
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"simple", "https://example.com/doc.PDF", ".pdf"},
		{"with query", "https://example.com/doc.pdf?format=pdf", ".pdf"},
		{"no extension", "https://example.com/docs/guide", ""},
		{"dotted directory no file extension", "https://example.com/v1.2/guide", ""},
		{"trailing slash", "https://example.com/docs/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urlutil.Extension(tt.url))
		})
	}
}

// Package urlutil implements the crawler's URL canonicalization rules.
//
// These rules are deliberately narrower than net/url's general-purpose
// parsing: the crawler only ever needs to recognize scheme://host[/path]
// shaped references, resolve relative hrefs against a base, and strip
// fragments. Pushing that through net/url's ResolveReference would fight
// its own normalization (e.g. it has no notion of rejecting mailto:/
// javascript: schemes); a small hand-rolled parser mirrors the exact rule
// list the crawler is specified against.
package urlutil

import "strings"

// Canonical is the parsed (scheme, host, path) triple used as the crawler's
// identity key for a URL. Host is always lowercased; path case is preserved.
type Canonical struct {
	Scheme string
	Host   string
	Path   string
}

// String reconstructs the canonical string form scheme://host+path.
func (c Canonical) String() string {
	return c.Scheme + "://" + c.Host + c.Path
}

// Parse accepts only scheme://host[/path] shaped input. The path defaults
// to "/" when absent. Returns ok=false for anything else (no scheme, no
// "//", empty host).
func Parse(s string) (Canonical, bool) {
	schemeSep := strings.Index(s, "://")
	if schemeSep <= 0 {
		return Canonical{}, false
	}
	scheme := strings.ToLower(s[:schemeSep])
	if scheme != "http" && scheme != "https" {
		return Canonical{}, false
	}
	rest := s[schemeSep+3:]
	if rest == "" {
		return Canonical{}, false
	}

	slash := strings.IndexByte(rest, '/')
	var host, path string
	if slash < 0 {
		host = rest
		path = "/"
	} else {
		host = rest[:slash]
		path = rest[slash:]
	}
	if host == "" {
		return Canonical{}, false
	}

	return Canonical{
		Scheme: scheme,
		Host:   strings.ToLower(host),
		Path:   path,
	}, true
}

// StripFragment truncates s at its first '#', if any. A URL with no
// fragment is returned unchanged (identity).
func StripFragment(s string) string {
	if idx := strings.IndexByte(s, '#'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// MakeAbsolute resolves href against base and returns a canonical string,
// or "" when the reference cannot or should not be followed. Rules are
// applied in order, matching spec.md §4.2:
//
//  1. trim whitespace and strip any fragment
//  2. empty (including fragment-only, e.g. "#section") -> empty
//  3. mailto:/javascript: -> empty
//  4. absolute http(s)://... -> strip fragment, return as-is
//  5. protocol-relative //host/path -> prepend base scheme
//  6. leading / -> replace base path with href
//  7. otherwise -> resolve against base's directory
func MakeAbsolute(base Canonical, href string) string {
	href = StripFragment(strings.TrimSpace(href))
	if href == "" {
		return ""
	}

	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "javascript:") {
		return ""
	}

	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return StripFragment(href)
	}

	if strings.HasPrefix(href, "//") {
		return StripFragment(base.Scheme + ":" + href)
	}

	var path string
	if strings.HasPrefix(href, "/") {
		path = href
	} else {
		path = dirOf(base.Path) + href
	}

	return StripFragment(base.Scheme + "://" + base.Host + path)
}

// dirOf returns everything up to and including the last '/' in path, or
// "/" if path contains no slash.
func dirOf(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[:idx+1]
	}
	return "/"
}

// Extension returns the lowercased suffix following the last '.' of the
// last path segment, with the query string removed first. Returns "" when
// no dot is present.
func Extension(rawURL string) string {
	withoutQuery, _, _ := strings.Cut(rawURL, "?")
	lastSlash := strings.LastIndexByte(withoutQuery, '/')
	file := withoutQuery[lastSlash+1:]
	dot := strings.LastIndexByte(file, '.')
	if dot < 0 {
		return ""
	}
	return strings.ToLower(file[dot:])
}

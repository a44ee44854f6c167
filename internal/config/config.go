// Package config loads the crawler's configuration document, applying
// documented defaults and the post-processing rules the crawler requires
// (lowercased domains, dotted extensions, repo-root-relative output paths).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/falcongraph/crawler/pkg/reporoot"
)

// Config holds everything the crawler needs to run a single crawl.
type Config struct {
	startURL       string
	allowedDomains map[string]struct{}
	rawOutput      string
	maxPages       int
	delay          time.Duration
	timeout        time.Duration
	crawlerThreads int
	extensions     map[string]struct{}
}

var defaultAllowedDomains = []string{"www.bgsu.edu", "bgsu.edu"}

var defaultExtensions = []string{
	".html", ".htm", ".php", ".asp", ".aspx", ".jsp", ".pdf", ".txt", ".json",
	".csv", ".xml", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx", ".rtf",
	".srt", ".vtt", ".jpg", ".jpeg", ".png", ".gif", ".svg", ".zip", ".tar",
	".gz", ".mp3", ".mp4",
}

func withDefaults() Config {
	return Config{
		startURL:       "https://www.bgsu.edu",
		allowedDomains: toSet(defaultAllowedDomains),
		rawOutput:      "data/raw",
		maxPages:       -1,
		delay:          250 * time.Millisecond,
		timeout:        20 * time.Second,
		crawlerThreads: runtime.NumCPU(),
		extensions:     toSet(defaultExtensions),
	}
}

// configDTO mirrors the on-disk JSON document. Pointer fields distinguish
// "absent from the file" from the type's zero value, since zero is a
// meaningful value for max_pages, delay, and crawler_threads.
type configDTO struct {
	StartURL       string   `json:"start_url"`
	AllowedDomains []string `json:"allowed_domains"`
	RawOutput      string   `json:"raw_output"`
	MaxPages       *int     `json:"max_pages"`
	Delay          *float64 `json:"delay"`
	Timeout        *float64 `json:"timeout"`
	CrawlerThreads *int     `json:"crawler_threads"`
	Extensions     []string `json:"extensions"`
}

// Load discovers the repo root by walking upward from startDir for
// config/pipeline.json, and parses it if present. Absence of the file is
// not an error — Load proceeds with defaults. A present-but-malformed file
// returns an error wrapping ErrConfigParsingFail.
func Load(startDir string) (Config, error) {
	root := reporoot.Find(startDir)
	cfg := withDefaults()
	cfg.rawOutput = filepath.Join(root, cfg.rawOutput)

	path := filepath.Join(root, "config", "pipeline.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		postProcess(&cfg)
		return cfg, nil
	}

	var dto configDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	applyDTO(&cfg, dto, root)
	postProcess(&cfg)
	return cfg, nil
}

// LoadFromFile parses an explicitly named config document, bypassing
// repo-root discovery. Unlike Load, a missing file is an error: an operator
// who names a config file expects it to exist. If path's parent directory
// is named "config" (the conventional layout), its grandparent is treated
// as the repo root for resolving a relative raw_output; otherwise the
// file's own directory is used.
func LoadFromFile(path string) (Config, error) {
	cfg := withDefaults()

	root := filepath.Dir(path)
	if filepath.Base(root) == "config" {
		root = filepath.Dir(root)
	}
	cfg.rawOutput = filepath.Join(root, cfg.rawOutput)

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
	}

	var dto configDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	applyDTO(&cfg, dto, root)
	postProcess(&cfg)
	return cfg, nil
}

func applyDTO(cfg *Config, dto configDTO, root string) {
	if dto.StartURL != "" {
		cfg.startURL = dto.StartURL
	}
	if len(dto.AllowedDomains) > 0 {
		cfg.allowedDomains = toSet(dto.AllowedDomains)
	}
	if dto.RawOutput != "" {
		cfg.rawOutput = resolveOutputPath(root, dto.RawOutput)
	}
	if dto.MaxPages != nil {
		cfg.maxPages = *dto.MaxPages
	}
	if dto.Delay != nil {
		cfg.delay = time.Duration(*dto.Delay * float64(time.Second))
	}
	if dto.Timeout != nil {
		cfg.timeout = time.Duration(*dto.Timeout * float64(time.Second))
	}
	if dto.CrawlerThreads != nil {
		cfg.crawlerThreads = *dto.CrawlerThreads
	}
	if len(dto.Extensions) > 0 {
		cfg.extensions = toSet(dto.Extensions)
	}
}

func resolveOutputPath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// postProcess applies the crawler's documented normalization rules:
// domains lowercased, extensions dotted, non-positive thread count falls
// back to hardware concurrency.
func postProcess(cfg *Config) {
	lowered := make(map[string]struct{}, len(cfg.allowedDomains))
	for d := range cfg.allowedDomains {
		lowered[strings.ToLower(d)] = struct{}{}
	}
	cfg.allowedDomains = lowered

	dotted := make(map[string]struct{}, len(cfg.extensions))
	for ext := range cfg.extensions {
		ext = strings.ToLower(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		dotted[ext] = struct{}{}
	}
	cfg.extensions = dotted

	if cfg.crawlerThreads <= 0 {
		cfg.crawlerThreads = runtime.NumCPU()
		if cfg.crawlerThreads < 1 {
			cfg.crawlerThreads = 1
		}
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (c Config) StartURL() string {
	return c.startURL
}

func (c Config) AllowedDomains() map[string]struct{} {
	out := make(map[string]struct{}, len(c.allowedDomains))
	for k, v := range c.allowedDomains {
		out[k] = v
	}
	return out
}

func (c Config) RawOutput() string {
	return c.rawOutput
}

func (c Config) MaxPages() int {
	return c.maxPages
}

func (c Config) Delay() time.Duration {
	return c.delay
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) CrawlerThreads() int {
	return c.crawlerThreads
}

func (c Config) Extensions() map[string]struct{} {
	out := make(map[string]struct{}, len(c.extensions))
	for k, v := range c.extensions {
		out[k] = v
	}
	return out
}

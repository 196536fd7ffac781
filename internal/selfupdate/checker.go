// Package selfupdate checks GitHub releases for a newer memorymaster build
// and replaces the running binary in place.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	binaryName     = "memorymaster"
	defaultOwner   = "abdulsamadj00-tech"
	defaultRepo    = "Abdul-Samad"
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second
)

// Checker talks to the GitHub releases API.
type Checker struct {
	client   *http.Client
	baseURL  string
	owner    string
	repo     string
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithRepo points the checker at a different GitHub repository.
func WithRepo(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker for the memorymaster releases.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:   &http.Client{Timeout: defaultTimeout},
		baseURL:  defaultBaseURL,
		owner:    defaultOwner,
		repo:     defaultRepo,
		execPath: executablePath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func executablePath() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(p)
}

// CheckInput describes the running build.
type CheckInput struct {
	Version string
}

// CheckResult reports the latest release.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
	Assets          []Asset
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

type release struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []Asset `json:"assets"`
}

// Check fetches the latest release and compares it to input.Version.
// Development builds never report an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	rel, err := c.fetchRelease(ctx, "")
	if err != nil {
		return nil, err
	}

	current := canonical(input.Version)
	latest := canonical(rel.TagName)
	return &CheckResult{
		CurrentVersion: input.Version,
		LatestVersion:  rel.TagName,
		ReleaseURL:     rel.HTMLURL,
		UpdateAvailable: !isDevBuild(input.Version) &&
			semver.IsValid(current) && semver.IsValid(latest) && semver.Compare(latest, current) > 0,
		Assets: rel.Assets,
	}, nil
}

// fetchRelease loads the release for tag, or the latest release when tag
// is empty.
func (c *Checker) fetchRelease(ctx context.Context, tag string) (*release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)
	what := "latest release"
	if tag == "" {
		endpoint += "latest"
	} else {
		endpoint += "tags/" + url.PathEscape(canonical(tag))
		what = "release " + canonical(tag)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", what, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", what, resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("%s has no tag", what)
	}
	return &rel, nil
}

// canonical adds the "v" prefix semver expects.
func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

func isDevBuild(v string) bool {
	switch v {
	case "", "dev", "(devel)":
		return true
	}
	return false
}

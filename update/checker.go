// Package update asks the project's release feed whether a newer version
// has been published.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	ReleasesURL = "https://api.github.com/repos/EnoMi-4mg/Pro-Multi-Tab-Notepad/releases/latest"

	connectTimeout = 5 * time.Second
	readTimeout    = 15 * time.Second
)

type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Result describes the outcome of a successful check.
type Result struct {
	Available bool
	Latest    string
	URL       string
}

// Checker queries a GitHub "latest release" endpoint.
type Checker struct {
	URL     string
	Current string
	Client  *http.Client
}

func NewChecker(current string) *Checker {
	return &Checker{
		URL:     ReleasesURL,
		Current: current,
		Client:  NewClient(),
	}
}

// NewClient returns an HTTP client with a connect timeout and a response
// header timeout.
func NewClient() *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout}
	return &http.Client{
		Timeout: connectTimeout + readTimeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   connectTimeout,
			ResponseHeaderTimeout: readTimeout,
		},
	}
}

// Check fetches the latest release and compares it with the running version.
func (c *Checker) Check(ctx context.Context) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "notepad/"+c.Current)
	req.Header.Set("Accept", "application/vnd.github+json")

	client := c.Client
	if client == nil {
		client = NewClient()
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Result{}, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	return Result{
		Available: latest != "" && IsNewer(latest, strings.TrimPrefix(c.Current, "v")),
		Latest:    latest,
		URL:       release.HTMLURL,
	}, nil
}

// IsNewer reports whether latest is a higher version than current. Numeric
// parts are compared first; on a tie a final release beats a pre-release.
func IsNewer(latest, current string) bool {
	lp, lpre := parseVersion(latest)
	cp, cpre := parseVersion(current)

	n := max(len(lp), len(cp))
	for len(lp) < n {
		lp = append(lp, 0)
	}
	for len(cp) < n {
		cp = append(cp, 0)
	}
	for i := 0; i < n; i++ {
		if lp[i] != cp[i] {
			return lp[i] > cp[i]
		}
	}
	return cpre && !lpre
}

// parseVersion splits a version into its numeric parts and reports whether
// it carries a pre-release suffix. Build metadata is ignored.
func parseVersion(version string) (parts []int, prerelease bool) {
	if i := strings.IndexByte(version, '+'); i != -1 {
		version = version[:i]
	}
	if i := strings.IndexByte(version, '-'); i != -1 {
		version = version[:i]
		prerelease = true
	}
	for _, p := range strings.Split(version, ".") {
		num, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		parts = append(parts, num)
	}
	return parts, prerelease
}

package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var ErrNoFeed = errors.New("release: no feed URL configured")

// Release is one entry of the JSON update feed.
type Release struct {
	Version string `json:"version"`
	URL     string `json:"url"`
	Notes   string `json:"notes"`
}

type Checker struct {
	FeedURL string
	Current string
	Client  *http.Client
}

func NewChecker(feedURL, current string) *Checker {
	return &Checker{
		FeedURL: feedURL,
		Current: current,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Check fetches the feed and reports whether a newer release than
// Current is available.
func (c *Checker) Check(ctx context.Context) (Release, bool, error) {
	if strings.TrimSpace(c.FeedURL) == "" {
		return Release{}, false, ErrNoFeed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FeedURL, nil)
	if err != nil {
		return Release{}, false, fmt.Errorf("build feed request: %w", err)
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Release{}, false, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, false, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	var latest Release
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return Release{}, false, fmt.Errorf("decode feed: %w", err)
	}
	if strings.TrimSpace(latest.Version) == "" {
		return Release{}, false, errors.New("release: feed entry has no version")
	}

	return latest, compareVersions(latest.Version, c.Current) > 0, nil
}

// compareVersions compares dotted integer versions, ignoring a leading
// "v". Missing segments count as zero; non-numeric segments compare as
// zero.
func compareVersions(a, b string) int {
	as := strings.Split(strings.TrimPrefix(strings.TrimSpace(a), "v"), ".")
	bs := strings.Split(strings.TrimPrefix(strings.TrimSpace(b), "v"), ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av > bv {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Package update compares the running revision with the head of the
// upstream branch. Applying an update is left to the host's deployment.
package update

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/config"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/urls"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/version"
)

// JSONGetter fetches and decodes a JSON document.
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// Result is the outcome of one check.
type Result struct {
	Local     string    `json:"local"`
	Remote    string    `json:"remote"`
	Available bool      `json:"available"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker looks up the branch head on GitHub.
type Checker struct {
	Client     JSONGetter
	BaseURL    string
	Repo       string
	Branch     string
	MarkerFile string

	now func() time.Time
}

// New creates a Checker from the update section.
func New(cfg config.UpdateConfig, client JSONGetter) *Checker {
	repo := cfg.Repo
	if repo == "" {
		repo = urls.DefaultRepository
	}
	return &Checker{
		Client:     client,
		BaseURL:    urls.GitHubAPIBase,
		Repo:       repo,
		Branch:     cfg.Branch,
		MarkerFile: cfg.MarkerFile,
		now:        time.Now,
	}
}

type branchResponse struct {
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// Local returns the marker file contents, or the build commit when no
// marker is configured or readable.
func (c *Checker) Local() string {
	if c.MarkerFile != "" {
		if data, err := os.ReadFile(c.MarkerFile); err == nil {
			if s := strings.TrimSpace(string(data)); s != "" {
				return s
			}
		}
	}
	return strings.TrimSuffix(version.Commit, "-dirty")
}

// Remote returns the sha at the head of the configured branch.
func (c *Checker) Remote(ctx context.Context) (string, error) {
	var resp branchResponse
	url := fmt.Sprintf("%s/repos/%s/branches/%s", c.BaseURL, c.Repo, c.Branch)
	if err := c.Client.GetJSON(ctx, url, &resp); err != nil {
		return "", err
	}
	if resp.Commit.SHA == "" {
		return "", errors.New("branch response has no commit sha")
	}
	return resp.Commit.SHA, nil
}

// Check compares local and remote revisions. An unknown local revision
// never reports an update.
func (c *Checker) Check(ctx context.Context) (Result, error) {
	remote, err := c.Remote(ctx)
	if err != nil {
		return Result{}, err
	}
	local := c.Local()
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return Result{
		Local:     local,
		Remote:    remote,
		Available: local != "unknown" && local != "" && local != remote,
		CheckedAt: now(),
	}, nil
}

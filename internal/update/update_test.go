package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/config"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/fetch"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/retry"
)

func testChecker(t *testing.T, sha string) (*Checker, *string) {
	t.Helper()
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"name":"main","commit":{"sha":"` + sha + `"}}`))
	}))
	t.Cleanup(server.Close)

	client := fetch.NewClient(fetch.Options{Policy: retry.Policy{MaxAttempts: 1}})
	c := New(config.UpdateConfig{Repo: "jhaugh0/Rain-Chance-Monitor", Branch: "main"}, client)
	c.BaseURL = server.URL
	return c, &path
}

func writeMarker(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "version")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCheck_UpdateAvailable(t *testing.T) {
	c, path := testChecker(t, "bbb222")
	c.MarkerFile = writeMarker(t, "aaa111\n")

	res, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if *path != "/repos/jhaugh0/Rain-Chance-Monitor/branches/main" {
		t.Errorf("path = %q", *path)
	}
	if res.Local != "aaa111" || res.Remote != "bbb222" || !res.Available {
		t.Errorf("Check() = %+v", res)
	}
}

func TestCheck_UpToDate(t *testing.T) {
	c, _ := testChecker(t, "aaa111")
	c.MarkerFile = writeMarker(t, "aaa111")

	res, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if res.Available {
		t.Errorf("Available = true for matching revisions")
	}
}

func TestCheck_MissingSHA(t *testing.T) {
	c, _ := testChecker(t, "")
	if _, err := c.Check(context.Background()); err == nil {
		t.Error("Check() should fail without a commit sha")
	}
}

func TestLocal_FallsBackToBuildCommit(t *testing.T) {
	c := &Checker{MarkerFile: filepath.Join(t.TempDir(), "missing")}
	if c.Local() == "" {
		t.Error("Local() should fall back to the build commit")
	}
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-issue-upsert/internal/domain/entity"
)

func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		title, body, bodyFile, assignees, labels = "", "", "", "", ""
		repository, configFile, outputFormat = "", "", ""
		strict = false
	}
	reset()
	t.Cleanup(reset)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := Execute(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`github:
  repository: acme/ci
  base_url: %s
  max_retries: 1
default_values:
  labels: [ci]
  assignees: [alice]
`, baseURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuildRequest_FlagsOverrideConfig(t *testing.T) {
	resetFlags(t)
	title = "Nightly failure: build-42"
	body = "details"
	labels = "bug, nightly"

	cfg := &entity.Config{}
	cfg.Defaults.Labels = []string{"ci"}
	cfg.Defaults.Assignees = []string{"alice"}

	req, err := buildRequest(cfg, strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, entity.UpsertRequest{
		Title:     "Nightly failure: build-42",
		Body:      "details",
		Assignees: []string{"alice"},
		Labels:    []string{"bug", "nightly"},
	}, req)
}

func TestBuildRequest_RejectsBlankTitle(t *testing.T) {
	resetFlags(t)
	title = "  "

	_, err := buildRequest(&entity.Config{}, strings.NewReader(""))
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)
}

func TestReadBody(t *testing.T) {
	resetFlags(t)

	body = "inline"
	got, err := readBody(strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	bodyFile = "-"
	got, err = readBody(strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	bodyFile = filepath.Join(t.TempDir(), "body.md")
	require.NoError(t, os.WriteFile(bodyFile, []byte("from file"), 0o600))
	got, err = readBody(nil)
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	bodyFile = filepath.Join(t.TempDir(), "missing.md")
	_, err = readBody(nil)
	assert.Error(t, err)
}

func TestGenerateConfigCommand(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "generated.json")

	out, err := execute(t, "generate-config", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Example config file generated")
	assert.FileExists(t, path)
}

func TestRootCommand_StrictUpdatesExistingIssue(t *testing.T) {
	resetFlags(t)

	var patched int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch path := strings.TrimPrefix(r.URL.Path, "/api/v3"); {
		case r.Method == http.MethodGet && path == "/search/issues":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []map[string]interface{}{
					{"number": 5, "title": "Nightly failure: build-41"},
					{"number": 17, "title": "Nightly failure: build-42", "html_url": "https://github.com/acme/ci/issues/17"},
				},
			})
		case r.Method == http.MethodPatch && path == "/repos/acme/ci/issues/17":
			atomic.AddInt32(&patched, 1)
			var payload map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&payload)
			assert.Equal(t, map[string]interface{}{"body": "new body"}, payload)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"number": 17, "html_url": "https://github.com/acme/ci/issues/17"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("GITHUB_REPOSITORY", "")
	configPath := writeConfig(t, server.URL)

	out, err := execute(t, "--config", configPath, "--title", "Nightly failure: build-42", "--body", "new body",
		"--labels", "ignored-on-update", "--strict", "--output", "json")
	require.NoError(t, err)

	var outcome entity.UpsertOutcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcome))
	assert.Equal(t, entity.ActionUpdated, outcome.Action)
	assert.Equal(t, 17, outcome.IssueNumber)
	assert.Equal(t, int32(1), atomic.LoadInt32(&patched))
}

func TestRootCommand_FailureIsSwallowedUnlessStrict(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	t.Setenv("GITHUB_TOKEN", "test-token")
	configPath := writeConfig(t, server.URL)

	resetFlags(t)
	_, err := execute(t, "--config", configPath, "--title", "Nightly failure: build-42")
	assert.NoError(t, err)

	resetFlags(t)
	_, err = execute(t, "--config", configPath, "--title", "Nightly failure: build-42", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracker search failed")

	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestRootCommand_RequiresToken(t *testing.T) {
	resetFlags(t)
	t.Setenv("GITHUB_TOKEN", "")

	_, err := execute(t, "--config", writeConfig(t, "http://127.0.0.1:1"), "--title", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

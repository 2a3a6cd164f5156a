package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
)

func TestRunStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader(`[{"videoUrl":"v1","likesCount":10,"commentsCount":5,"owner":{"followersCount":100}}]`)

	code := run([]string{"-username", "@someone"}, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr %q", code, stderr.String())
	}

	var got entity.AnalyticsResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Profile.Username != "someone" {
		t.Errorf("Username = %q, want %q", got.Profile.Username, "someone")
	}
	if len(got.Posts) != 1 || got.Posts[0].EngagementRate != 15 {
		t.Errorf("Posts = %+v, want one post at 15%%", got.Posts)
	}
	if !strings.Contains(stdout.String(), "\n  \"profile\"") {
		t.Error("output is not indented")
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(path, []byte(`{"posts":[{"id":"p1"}],"username":"x"}`), 0o600); err != nil {
		t.Fatalf("writing payload: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-username", "x", path}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"id": "p1"`) {
		t.Errorf("output %q is missing post p1", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		in   string
		want int
	}{
		{"invalid json", []string{"-username", "x"}, `{"posts":`, 1},
		{"missing file", []string{"-username", "x", filepath.Join(t.TempDir(), "nope.json")}, "", 1},
		{"too many args", []string{"a.json", "b.json"}, "", 2},
		{"unknown flag", []string{"-bogus"}, "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, strings.NewReader(tt.in), &stdout, &stderr); code != tt.want {
				t.Errorf("run() = %d, want %d", code, tt.want)
			}
			if stdout.Len() != 0 {
				t.Errorf("stdout = %q, want empty", stdout.String())
			}
		})
	}
}

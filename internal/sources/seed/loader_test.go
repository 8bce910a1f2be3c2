package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "seed.yaml")

	yamlContent := `---
reels:
  - link: https://instagram.com/reel/abc
    keyword: guide
    reward: https://example.com/guide.pdf
  - link: https://instagram.com/reel/def
    keyword: promo
    status: disabled
`

	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	got, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := File{Reels: []Entry{
		{Link: "https://instagram.com/reel/abc", Keyword: "guide", Reward: "https://example.com/guide.pdf"},
		{Link: "https://instagram.com/reel/def", Keyword: "promo", Status: "disabled"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderExpandsEnv(t *testing.T) {
	loader := NewLoader("")
	loader.lookup = func(name string) (string, bool) {
		if name == "REWARD_URL" {
			return "https://cdn.example.com/r.pdf", true
		}
		return "", false
	}

	got, err := loader.Parse([]byte(`reels:
  - link: https://x.co
    keyword: win
    reward: ${REWARD_URL}
  - link: https://y.co${MISSING}
    keyword: lose
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Reels[0].Reward != "https://cdn.example.com/r.pdf" {
		t.Errorf("Reward = %q", got.Reels[0].Reward)
	}
	if got.Reels[1].Link != "https://y.co" {
		t.Errorf("unset variable should expand to empty, got %q", got.Reels[1].Link)
	}
}

func TestLoaderEmptyFile(t *testing.T) {
	got, err := NewLoader("").Parse(nil)
	if err != nil {
		t.Fatalf("Parse(empty) error = %v", err)
	}
	if len(got.Reels) != 0 {
		t.Errorf("Parse(empty) = %+v", got)
	}
}

func TestLoaderRejectsUnknownFields(t *testing.T) {
	_, err := NewLoader("").Parse([]byte("reels:\n  - link: a\n    keywrd: typo\n"))
	if err == nil {
		t.Error("Parse() should reject unknown fields")
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/seed.yaml")
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

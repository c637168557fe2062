package spaceschemasdk

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestNormalizeConfig(t *testing.T) {
	dir := t.TempDir()

	fs, err := normalizeConfig(Config{Dir: " " + dir + " "})
	if err != nil {
		t.Fatalf("normalizeConfig returned error: %v", err)
	}
	if fs.Source != SourceFilesystem || fs.Dir != filepath.Clean(dir) {
		t.Fatalf("unexpected filesystem config %+v", fs)
	}

	git, err := normalizeConfig(Config{Source: SourceGit, Git: GitConfig{RepoPath: dir}})
	if err != nil {
		t.Fatalf("normalizeConfig returned error: %v", err)
	}
	if git.Dir != "." || git.Git.Revision != "HEAD" || !filepath.IsAbs(git.Git.RepoPath) {
		t.Fatalf("unexpected git config %+v", git)
	}
}

func TestNormalizeConfigErrors(t *testing.T) {
	tests := []struct {
		cfg  Config
		want error
	}{
		{cfg: Config{}, want: ErrDirRequired},
		{cfg: Config{Source: SourceGit}, want: ErrGitRepoRequired},
		{cfg: Config{Dir: "schemas", Source: "s3"}, want: ErrInvalidSource},
	}
	for _, tt := range tests {
		if _, err := normalizeConfig(tt.cfg); !errors.Is(err, tt.want) {
			t.Fatalf("expected %v, got %v for %+v", tt.want, err, tt.cfg)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("schemas")
	if cfg.Source != SourceFilesystem || !cfg.Index.Fast {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Index.DBPath != filepath.Join("schemas", "spaceschema.db") {
		t.Fatalf("unexpected index path %s", cfg.Index.DBPath)
	}
}

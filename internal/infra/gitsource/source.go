package gitsource

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

const defaultRevision = "HEAD"

// Source serves schema files from a directory inside a commit tree. The
// revision is resolved once, so later branch moves do not change what the
// process sees. Object reads are serialized on mu.
type Source struct {
	repoPath string
	revision string

	mu     sync.Mutex
	commit *object.Commit
}

func New(repoPath, revision string) *Source {
	revision = strings.TrimSpace(revision)
	if revision == "" {
		revision = defaultRevision
	}
	return &Source{repoPath: repoPath, revision: revision}
}

// Commit returns the hash the revision resolved to.
func (s *Source) Commit(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commit, err := s.resolve(ctx)
	if err != nil {
		return "", err
	}
	return commit.Hash.String(), nil
}

func (s *Source) ListSchemaFiles(ctx context.Context, dir string) ([]domain.SchemaFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, err := s.tree(ctx, dir)
	if err != nil {
		if errors.Is(err, object.ErrDirectoryNotFound) {
			return nil, fmt.Errorf("%w: list %s at %s: %w", domain.ErrSchemaIO, dir, s.revision, err)
		}
		return nil, err
	}

	files := make([]domain.SchemaFile, 0, len(tree.Entries))
	for i := range tree.Entries {
		entry := &tree.Entries[i]
		if !entry.Mode.IsFile() || entry.Mode == filemode.Symlink {
			continue
		}
		if !domain.IsSchemaFileName(entry.Name) {
			continue
		}
		file, err := tree.TreeEntryFile(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: read tree entry %s: %w", domain.ErrSchemaIO, entry.Name, err)
		}
		files = append(files, domain.SchemaFile{Name: entry.Name, Size: file.Size})
	}
	return files, nil
}

func (s *Source) ReadSchema(ctx context.Context, dir, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, err := s.tree(ctx, dir)
	if err != nil {
		if errors.Is(err, object.ErrDirectoryNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSchemaNotFound, path.Join(dir, name))
		}
		return nil, err
	}

	file, err := tree.File(name)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s at %s", domain.ErrSchemaNotFound, path.Join(dir, name), s.revision)
		}
		return nil, fmt.Errorf("%w: read schema %s: %w", domain.ErrSchemaIO, name, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("%w: read schema %s: %w", domain.ErrSchemaIO, name, err)
	}
	return []byte(contents), nil
}

func (s *Source) tree(ctx context.Context, dir string) (*object.Tree, error) {
	commit, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}

	root, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("%w: read commit tree: %w", domain.ErrSchemaIO, err)
	}

	dir = treeDir(dir)
	if dir == "" {
		return root, nil
	}
	return root.Tree(dir)
}

// resolve expects mu to be held.
func (s *Source) resolve(ctx context.Context) (*object.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.commit != nil {
		return s.commit, nil
	}

	repo, err := git.PlainOpenWithOptions(s.repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: open git repo %s: %w", domain.ErrSchemaIO, s.repoPath, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(s.revision))
	if err != nil {
		return nil, fmt.Errorf("%w: resolve revision %s: %w", domain.ErrSchemaIO, s.revision, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("%w: read commit %s: %w", domain.ErrSchemaIO, hash, err)
	}
	s.commit = commit
	return commit, nil
}

// treeDir turns a catalog directory into a tree path. The repository root
// maps to the empty string.
func treeDir(dir string) string {
	dir = path.Clean(strings.ReplaceAll(strings.TrimSpace(dir), "\\", "/"))
	dir = strings.Trim(dir, "/")
	if dir == "." {
		return ""
	}
	return dir
}

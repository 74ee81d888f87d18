// pattern: Imperative Shell

package gitfind

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/unsafe9/alfred-gitopen/internal/logging"
)

// Repo represents a git repository found during directory scanning.
type Repo struct {
	Name   string // Directory name (used as display name)
	Path   string // Absolute path to the repository root
	Branch string // Checked-out branch, empty for detached HEAD
}

// Scanner discovers git repositories under configured roots.
type Scanner struct {
	MaxDepth int
	Log      *logging.ScopedLogger
}

// NewScanner creates a scanner that descends at most maxDepth directory
// levels below each root.
func NewScanner(maxDepth int, logs logging.LoggerProvider) *Scanner {
	if maxDepth <= 0 {
		maxDepth = 1
	}
	var log *logging.ScopedLogger
	if logs != nil {
		log = logs.For("gitfind")
	} else {
		log = logging.NopLogger()
	}
	return &Scanner{MaxDepth: maxDepth, Log: log}
}

// ScanAll scans all provided roots for git repositories. Roots are walked
// concurrently; the merged result is deduplicated by canonical path and
// sorted by name.
func (s *Scanner) ScanAll(roots []string) []Repo {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		found []Repo
	)

	for _, root := range roots {
		wg.Add(1)
		go func(root string) {
			defer wg.Done()
			repos := s.scanRoot(root)
			mu.Lock()
			found = append(found, repos...)
			mu.Unlock()
		}(root)
	}
	wg.Wait()

	seen := make(map[string]bool)
	out := found[:0]
	for _, repo := range found {
		if seen[repo.Path] {
			continue
		}
		seen[repo.Path] = true
		out = append(out, repo)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func (s *Scanner) scanRoot(root string) []Repo {
	var repos []Repo
	s.walk(root, 0, &repos)
	return repos
}

// walk descends into dir looking for .git markers. A directory that is
// itself a repository is not descended into further.
func (s *Scanner) walk(dir string, depth int, repos *[]Repo) {
	if isGitRepo(dir) {
		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil {
			resolved = dir
		}
		*repos = append(*repos, Repo{
			Name:   filepath.Base(resolved),
			Path:   resolved,
			Branch: currentBranch(resolved),
		})
		return
	}

	if depth >= s.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.Log.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		s.walk(filepath.Join(dir, entry.Name()), depth+1, repos)
	}
}

// isGitRepo reports whether dir contains a .git directory or file. A .git
// file covers worktrees and submodule checkouts.
func isGitRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && (info.IsDir() || info.Mode().IsRegular())
}

// currentBranch reads .git/HEAD and returns the checked-out branch name.
func currentBranch(repoPath string) string {
	gitPath := filepath.Join(repoPath, ".git")
	info, err := os.Stat(gitPath)
	if err != nil {
		return ""
	}
	// Worktrees store a "gitdir: <path>" pointer instead of a directory.
	if !info.IsDir() {
		data, err := os.ReadFile(gitPath)
		if err != nil {
			return ""
		}
		target := strings.TrimSpace(strings.TrimPrefix(string(data), "gitdir:"))
		if target == "" {
			return ""
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(repoPath, target)
		}
		gitPath = target
	}

	data, err := os.ReadFile(filepath.Join(gitPath, "HEAD"))
	if err != nil {
		return ""
	}
	head := strings.TrimSpace(string(data))
	const refPrefix = "ref: refs/heads/"
	if !strings.HasPrefix(head, refPrefix) {
		return ""
	}
	return strings.TrimPrefix(head, refPrefix)
}

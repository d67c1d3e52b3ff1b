package resolver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const cardPathsEnv = "RULEGRAPH_CARD_PATHS"

// searchSpace is the assembled set of places an IRI scan will look: ordered,
// de-duplicated scan directories, plus an id->path index assembled from any
// index JSON files named on RULEGRAPH_CARD_PATHS.
type searchSpace struct {
	dirs  []string
	index map[string]string // card id -> path, relative entries joined to the index file's directory
}

// buildSearchSpace computes the resolver's search space fresh on every call:
// it deliberately avoids caching this as module-level state, so a changed
// RULEGRAPH_CARD_PATHS takes effect on the very next resolution.
func buildSearchSpace() (*searchSpace, error) {
	ss := &searchSpace{index: make(map[string]string)}

	sawDirOrIndex := false
	for _, entry := range splitPathList(os.Getenv(cardPathsEnv)) {
		if entry == "" {
			continue
		}
		info, err := os.Stat(entry)
		if err != nil {
			continue
		}
		if info.IsDir() {
			ss.addDir(entry)
			sawDirOrIndex = true
			continue
		}
		if filepath.Ext(entry) == ".json" {
			if err := ss.loadIndexFile(entry); err != nil {
				return nil, err
			}
			sawDirOrIndex = true
		}
	}

	if !sawDirOrIndex {
		for _, dir := range devHeuristicDirs() {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				ss.addDir(dir)
			}
		}
	}

	return ss, nil
}

// addDir appends dir to the scan list, de-duplicating by canonical
// (absolute, cleaned) path while preserving first-occurrence order.
func (ss *searchSpace) addDir(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	for _, existing := range ss.dirs {
		if existing == abs {
			return
		}
	}
	ss.dirs = append(ss.dirs, abs)
}

// loadIndexFile loads an index document (card id -> path) and records its
// entries, resolving relative paths against the index file's directory.
func (ss *searchSpace) loadIndexFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("resolver: read index %s: %w", path, err)
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("resolver: parse index %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for id, p := range entries {
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		ss.index[id] = p
	}
	return nil
}

func splitPathList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] == os.PathListSeparator {
			out = append(out, v[start:i])
			start = i + 1
		}
	}
	out = append(out, v[start:])
	return out
}

// devHeuristicDirs returns the development-time fallback search directories:
// a sibling "lawcards/cards" directory of the repo parent, and a legacy
// "examples/data/lawcards" directory under the repo root.
func devHeuristicDirs() []string {
	root := repoRoot()
	if root == "" {
		return nil
	}
	parent := filepath.Dir(root)
	return []string{
		filepath.Join(parent, "lawcards", "cards"),
		filepath.Join(root, "examples", "data", "lawcards"),
	}
}

// repoRoot walks up from this source file's directory looking for a go.mod,
// mirroring the original implementation's search for a project marker file
// relative to its own location rather than the process's working directory.
func repoRoot() string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	dir := filepath.Dir(thisFile)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Package discovery expands directory arguments into the documents
// they contain.
package discovery

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"richedit/internal/eventbus"
	"richedit/internal/fileops"
)

// DefaultMaxDepth limits how far below a root Scan descends
const DefaultMaxDepth = 5

// Directories that never hold documents worth opening
var skipDirs = map[string]bool{
	"node_modules": true, "vendor": true, "dist": true, "build": true,
	"target": true, "__pycache__": true, "venv": true,
}

// Scanner finds .html, .htm and .txt files below a set of roots
type Scanner struct {
	bus      eventbus.EventBus
	maxDepth int
}

// NewScanner creates a scanner. A nil bus disables error events.
func NewScanner(bus eventbus.EventBus, maxDepth int) *Scanner {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Scanner{bus: bus, maxDepth: maxDepth}
}

// Expand returns args with every directory replaced by the documents
// below it, sorted by path. Plain files are passed through untouched
// so Open can report a missing file.
func (s *Scanner) Expand(ctx context.Context, args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			out = append(out, arg)
			continue
		}
		found, err := s.Scan(ctx, arg)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

// Scan walks root and returns the documents it holds
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Debug("Skipping unreadable path", "path", path, "err", err)
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			rel, _ := filepath.Rel(root, path)
			if strings.Count(rel, string(filepath.Separator)) >= s.maxDepth {
				return filepath.SkipDir
			}
			if strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && fileops.IsDocument(path) {
			found = append(found, path)
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, context.Canceled) && s.bus != nil {
			s.bus.Publish(eventbus.ErrorEvent{Message: "Failed to scan " + root, Err: err})
		}
		return nil, err
	}

	sort.Strings(found)
	log.Debug("Scanned directory", "root", root, "documents", len(found))
	return found, nil
}

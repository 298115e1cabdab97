package fsscan

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ output.Workspace = (*Workspace)(nil)

// Workspace is a read view of the project tree rooted at root. All paths it
// accepts and returns are slash separated and relative to that root.
type Workspace struct {
	fs   afero.Fs
	iofs fs.FS
	root string
}

// NewOSWorkspace exposes the directory root on the host filesystem.
func NewOSWorkspace(root string) *Workspace {
	abs, err := filepath.Abs(root)
	if err == nil {
		root = abs
	}
	return NewWorkspace(afero.NewBasePathFs(afero.NewOsFs(), root), root)
}

// NewWorkspace wraps a filesystem already rooted at the project root.
func NewWorkspace(fsys afero.Fs, root string) *Workspace {
	return &Workspace{
		fs:   fsys,
		iofs: afero.NewIOFS(fsys),
		root: root,
	}
}

func (w *Workspace) Root() string {
	return w.root
}

func (w *Workspace) Abs(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

func (w *Workspace) Exists(rel string) bool {
	ok, err := afero.Exists(w.fs, clean(rel))
	return err == nil && ok
}

func (w *Workspace) IsDir(rel string) bool {
	ok, err := afero.IsDir(w.fs, clean(rel))
	return err == nil && ok
}

func (w *Workspace) Size(rel string) (int64, error) {
	info, err := w.fs.Stat(clean(rel))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (w *Workspace) ReadFile(rel string) ([]byte, error) {
	return afero.ReadFile(w.fs, clean(rel))
}

// Glob matches files against a doublestar pattern such as src/**/*.tsx.
// Directories are never returned. A pattern under a missing directory yields
// no matches and no error.
func (w *Workspace) Glob(pattern string) ([]string, error) {
	pattern = strings.TrimPrefix(path.Clean(filepath.ToSlash(pattern)), "/")
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	matches, err := doublestar.Glob(w.iofs, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func (w *Workspace) Files(include, exclude []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range include {
		matches, err := w.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup || matchesAny(m, exclude) {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func matchesAny(file string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, file); ok {
			return true
		}
	}
	return false
}

// InspectHTML parses an HTML entry document and reports its title, the number
// of script elements and whether it carries a #root mount node.
func (w *Workspace) InspectHTML(rel string) (*output.HTMLSummary, error) {
	data, err := w.ReadFile(rel)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rel, err)
	}

	summary := &output.HTMLSummary{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script:
				summary.Scripts++
			case atom.Title:
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					summary.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			}
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == "root" {
					summary.HasRootNode = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return summary, nil
}

func clean(rel string) string {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "/" {
		return "."
	}
	return strings.TrimPrefix(rel, "/")
}

// Package fstree implements the tree package's Node/Leaf contract over an
// afero.Fs, so the same pairing and differ code runs against the real OS
// filesystem or an in-memory afero.MemMapFs in tests.
package fstree

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"sync"

	"github.com/spf13/afero"

	"github.com/semdiff/semdiff/internal/pkg/tree"
)

func init() {
	// mime.TypeByExtension defers to the host's /etc/mime.types, which is
	// not guaranteed to list every extension this tool cares about (or to
	// agree across hosts). Register the ones the differ chain keys off so
	// detection is deterministic regardless of environment.
	for ext, typ := range map[string]string{
		".json": "application/json",
		".txt":  "text/plain",
		".md":   "text/markdown",
		".yaml": "application/yaml",
		".yml":  "application/yaml",
		".png":  "image/png",
		".gif":  "image/gif",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".bmp":  "image/bmp",
		".webp": "image/webp",
		".avif": "image/avif",
		".wav":  "audio/wav",
		".mp3":  "audio/mpeg",
		".flac": "audio/flac",
		".mp4":  "video/mp4",
	} {
		_ = mime.AddExtensionType(ext, typ)
	}
}

// Root opens the directory at rootPath on fs as a tree.Node. rootPath may
// not exist, in which case Children returns an empty list (a deleted or
// added subtree endpoint, per spec.md §4.1 step 3).
func Root(fs afero.Fs, rootPath string) tree.Node {
	return &node{fs: fs, path: rootPath, name: ""}
}

type node struct {
	fs   afero.Fs
	path string
	name string
}

func (n *node) Name() string { return n.name }
func (n *node) IsNode() bool { return true }

func (n *node) Children() ([]tree.Item, error) {
	entries, err := afero.ReadDir(n.fs, n.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %q: %w", n.path, err)
	}

	items := make([]tree.Item, 0, len(entries))
	for _, e := range entries {
		childPath := path.Join(n.path, e.Name())
		if e.IsDir() {
			items = append(items, &node{fs: n.fs, path: childPath, name: e.Name()})
			continue
		}
		items = append(items, &leaf{fs: n.fs, path: childPath, name: e.Name(), size: e.Size(), modTime: e.ModTime().UnixNano()})
	}
	return items, nil
}

// leaf is a regular file. Its content is read once and cached behind a
// sync.Once so every Bytes()/Open() call after the first shares the same
// backing array — the "shared read-only byte view... cheaply cloneable"
// spec.md §3 asks for. A real mmap is not used (afero.Fs does not expose
// one uniformly across backends); content is read with afero.ReadFile.
type leaf struct {
	fs      afero.Fs
	path    string
	name    string
	size    int64
	modTime int64

	once    sync.Once
	content []byte
	readErr error
	mimeStr string
}

func (l *leaf) Name() string { return l.name }
func (l *leaf) IsNode() bool { return false }
func (l *leaf) Path() string { return l.path }
func (l *leaf) Size() int64  { return l.size }

func (l *leaf) ModTime() (int64, bool) {
	if l.modTime == 0 {
		return 0, false
	}
	return l.modTime, true
}

func (l *leaf) load() {
	l.once.Do(func() {
		l.content, l.readErr = afero.ReadFile(l.fs, l.path)
		if l.readErr != nil {
			return
		}
		l.mimeStr = detectMIME(l.path, l.content)
	})
}

func (l *leaf) Bytes() ([]byte, error) {
	l.load()
	if l.readErr != nil {
		return nil, fmt.Errorf("read %q: %w", l.path, l.readErr)
	}
	return l.content, nil
}

func (l *leaf) Open() (io.ReadCloser, error) {
	b, err := l.Bytes()
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (l *leaf) MIME() string {
	l.load()
	return l.mimeStr
}

// detectMIME mirrors spec.md §4.6's codec-probe pattern (extension hint
// first, then content sniff) for the MIME detector external collaborator
// spec.md §6 leaves to the host.
func detectMIME(filePath string, content []byte) string {
	if ext := path.Ext(filePath); ext != "" {
		if m := mime.TypeByExtension(ext); m != "" {
			return stripParams(m)
		}
	}
	n := len(content)
	if n > 512 {
		n = 512
	}
	return stripParams(http.DetectContentType(content[:n]))
}

func stripParams(m string) string {
	for i, c := range m {
		if c == ';' {
			return m[:i]
		}
	}
	return m
}

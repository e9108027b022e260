package asset

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ContentType maps an extension to a MIME type; no extension is plain text.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return "text/plain; charset=utf-8"
	}
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// FSReader serves storefront files from a directory. Files with an
// extension outside the allow-list are refused; files without one are
// served as plain text.
type FSReader struct {
	Root string
}

func NewFSReader(root string) *FSReader {
	return &FSReader{Root: root}
}

// Read resolves a request path ("/" is index.html) and returns the file
// bytes with their content type.
func (r *FSReader) Read(urlPath string) ([]byte, string, error) {
	if i := strings.IndexAny(urlPath, "?#"); i >= 0 {
		urlPath = urlPath[:i]
	}
	if urlPath == "" || urlPath == "/" {
		urlPath = "/index.html"
	}
	if strings.Contains(urlPath, "..") || strings.ContainsRune(urlPath, 0) {
		return nil, "", ErrForbidden
	}
	name := path.Clean("/" + urlPath)
	if ext := strings.ToLower(path.Ext(name)); ext != "" {
		if _, ok := contentTypes[ext]; !ok {
			return nil, "", ErrForbidden
		}
	}
	full := filepath.Join(r.Root, filepath.FromSlash(strings.TrimPrefix(name, "/")))
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if info.IsDir() {
		return nil, "", ErrNotFound
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, "", err
	}
	return data, ContentType(name), nil
}

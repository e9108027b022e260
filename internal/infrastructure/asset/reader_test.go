package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFSReader_Read(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<h1>Milán</h1>")
	writeFile(t, dir, "js/app.js", "console.log(1)")
	writeFile(t, dir, "img/Pizza.JPG", "jpg")
	writeFile(t, dir, "secret.env", "KEY=1")
	writeFile(t, dir, "VERSION", "1.0")
	r := NewFSReader(dir)

	data, ct, err := r.Read("/")
	if err != nil || string(data) != "<h1>Milán</h1>" || ct != "text/html; charset=utf-8" {
		t.Fatalf("index: %q %q %v", data, ct, err)
	}
	_, ct, err = r.Read("/js/app.js?v=3")
	if err != nil || ct != "application/javascript; charset=utf-8" {
		t.Fatalf("js: %q %v", ct, err)
	}
	_, ct, err = r.Read("/img/Pizza.JPG")
	if err != nil || ct != "image/jpeg" {
		t.Fatalf("jpg: %q %v", ct, err)
	}

	data, ct, err = r.Read("/VERSION")
	if err != nil || string(data) != "1.0" || ct != "text/plain; charset=utf-8" {
		t.Fatalf("no extension: %q %q %v", data, ct, err)
	}

	cases := map[string]error{
		"/secret.env":         ErrForbidden,
		"/../etc/passwd.html": ErrForbidden,
		"/js/..%2f..%2fx.js":  ErrForbidden,
		"/missing.css":        ErrNotFound,
		"/README":             ErrNotFound,
		"/img":                ErrNotFound,
	}
	for p, want := range cases {
		if _, _, err := r.Read(p); !errors.Is(err, want) {
			t.Fatalf("%s: got %v want %v", p, err, want)
		}
	}
}

func TestContentType(t *testing.T) {
	if ct := ContentType("LICENSE"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("no extension: %q", ct)
	}
	if ct := ContentType("a.PNG"); ct != "image/png" {
		t.Fatalf("png: %q", ct)
	}
}

// Package testutil provides test helpers shared by vitestrap's package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of a slash-separated path under dir.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// WriteGeneratedProject writes a minimal create-vite React project into dir,
// the way the generator leaves it before any overlay.
func WriteGeneratedProject(t *testing.T, dir, name string, typed bool) {
	t.Helper()
	ext := "js"
	src := "jsx"
	if typed {
		ext, src = "ts", "tsx"
	}

	WriteFile(t, dir, "package.json", GeneratedManifest(name))
	WriteFile(t, dir, "vite.config."+ext, ViteConfig)
	WriteFile(t, dir, "index.html", "<!doctype html>\n<div id=\"root\"></div>\n")
	WriteFile(t, dir, "src/main."+src, "import App from './App'\n")
	WriteFile(t, dir, "src/App."+src, "export default function App() { return null }\n")
	WriteFile(t, dir, "src/index.css", ":root { font-family: system-ui; }\n")
	WriteFile(t, dir, "README.md", "# React + Vite\n\nGenerated by create-vite.\n")
}

package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nojima/hsend/response"
)

func TestMakeNonOverlappingFilename(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"body.json", "body.json.1", "out.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to create file: err=%+v", err)
		}
	}

	testCases := []struct {
		title    string
		path     string
		expected string
	}{
		{title: "Not exist", path: "new.json", expected: "new.json"},
		{title: "Exists", path: "out.txt", expected: "out.txt.1"},
		{title: "Suffixed file also exists", path: "body.json", expected: "body.json.2"},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual := makeNonOverlappingFilename(filepath.Join(dir, tt.path))
			if actual != filepath.Join(dir, tt.expected) {
				t.Errorf("unexpected path: expected=%s, actual=%s", filepath.Join(dir, tt.expected), actual)
			}
		})
	}
}

func TestFileWriter_Write(t *testing.T) {
	// Setup
	dir := t.TempDir()
	path := filepath.Join(dir, "body.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("failed to create file: err=%+v", err)
	}
	resp := response.Parse("HTTP/1.1 200 OK\r\n\r\n{\"a\":1}")

	testCases := []struct {
		title        string
		overwrite    bool
		expectedPath string
	}{
		{title: "Keep existing file", overwrite: false, expectedPath: path + ".1"},
		{title: "Overwrite", overwrite: true, expectedPath: path},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			// Exercise
			writer := NewFileWriter(&Options{OutputFile: path, Overwrite: tt.overwrite})
			if err := writer.Write(resp); err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}

			// Verify
			if writer.Path() != tt.expectedPath {
				t.Errorf("unexpected path: expected=%s, actual=%s", tt.expectedPath, writer.Path())
			}
			b, err := os.ReadFile(tt.expectedPath)
			if err != nil {
				t.Fatalf("failed to read file: err=%+v", err)
			}
			if string(b) != `{"a":1}` {
				t.Errorf("unexpected content: %s", b)
			}
		})
	}
}

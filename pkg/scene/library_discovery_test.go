package scene

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-metals", "Cornell Metals"},
		{"glass_and_fog", "Glass And Fog"},
		{"my-custom-library", "My Custom Library"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
		{"ñandu-études", "Ñandu Études"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
			if !utf8.ValidString(result) {
				t.Errorf("titleCase(%q) produced invalid UTF-8 %q", tc.input, result)
			}
		})
	}
}

func TestListLibraries(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"zinc.json":        `{"name": "Anodized", "description": "coated metals", "materials": {"a": {"type": "metal"}}}`,
		"glass_tests.json": `{"materials": {"a": {"type": "dielectric", "ir": 1.5}, "b": {"type": "dielectric", "ir": 2.4}}}`,
		"broken.json":      `{"materials": `,
		"notes.txt":        `not a library`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	libraries, err := ListLibraries(dir, nil)
	if err != nil {
		t.Fatalf("ListLibraries: %v", err)
	}
	if len(libraries) != 2 {
		t.Fatalf("Expected 2 libraries, got %d: %+v", len(libraries), libraries)
	}

	first, second := libraries[0], libraries[1]
	if first.DisplayName != "Anodized" || first.ID != "zinc" || first.Description != "coated metals" {
		t.Errorf("Unexpected first library: %+v", first)
	}
	if second.DisplayName != "Glass Tests" || second.Materials != 2 {
		t.Errorf("Unexpected second library: %+v", second)
	}
	if second.FilePath != filepath.Join(dir, "glass_tests.json") {
		t.Errorf("Unexpected file path %s", second.FilePath)
	}
}

func TestListLibraries_EmptyDirectory(t *testing.T) {
	libraries, err := ListLibraries(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("ListLibraries: %v", err)
	}
	if libraries == nil || len(libraries) != 0 {
		t.Errorf("Expected an empty, non-nil list, got %v", libraries)
	}
}

package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/df07/go-scatter/pkg/core"
)

// LibraryInfo describes a library document found on disk
type LibraryInfo struct {
	ID          string `json:"id"`          // File name without extension
	DisplayName string `json:"displayName"` // Library name, or the title-cased ID
	Description string `json:"description"`
	Materials   int    `json:"materials"` // Number of materials declared
	FilePath    string `json:"filePath"`
}

// ListLibraries scans dir for *.json library documents. Files that fail to
// parse are logged and skipped.
func ListLibraries(dir string, logger core.Logger) ([]LibraryInfo, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan library directory: %w", err)
	}

	libraries := []LibraryInfo{}
	for _, filePath := range files {
		info, err := ParseLibraryInfo(filePath)
		if err != nil {
			logger.Printf("Warning: skipping %s: %v\n", filePath, err)
			continue
		}
		libraries = append(libraries, info)
	}

	sort.Slice(libraries, func(i, j int) bool {
		return libraries[i].DisplayName < libraries[j].DisplayName
	})

	return libraries, nil
}

// ParseLibraryInfo reads the metadata of one library document
func ParseLibraryInfo(filePath string) (LibraryInfo, error) {
	filename := filepath.Base(filePath)
	id := strings.TrimSuffix(filename, filepath.Ext(filename))

	cfg, err := LoadLibraryConfig(filePath)
	if err != nil {
		return LibraryInfo{}, err
	}

	info := LibraryInfo{
		ID:          id,
		DisplayName: cfg.Name,
		Description: cfg.Description,
		Materials:   len(cfg.Materials),
		FilePath:    filePath,
	}
	if info.DisplayName == "" {
		info.DisplayName = titleCase(id)
	}
	return info, nil
}

// titleCase converts "my-custom_library" to "My Custom Library"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		_, size := utf8.DecodeRuneInString(word)
		words[i] = strings.ToUpper(word[:size]) + strings.ToLower(word[size:])
	}

	return strings.Join(words, " ")
}

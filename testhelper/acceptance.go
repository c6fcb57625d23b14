package testhelper

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/shibukawa/snapjs/testdata"
)

// Case directories are three digits followed by a name.
var caseDir = regexp.MustCompile(`^[0-9]{3}.*$`)

// GetAcceptanceTestDirs returns the pipeline case directories in name order
func GetAcceptanceTestDirs() ([]string, error) {
	return caseDirs(testdata.AcceptanceTests, "acceptancetests")
}

// GetInspectTestDirs returns the tree dump case directories in name order
func GetInspectTestDirs() ([]string, error) {
	return caseDirs(testdata.InspectTests, "inspect")
}

func caseDirs(fsys fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s directory: %w", root, err)
	}

	var dirs []string

	for _, entry := range entries {
		if entry.IsDir() && caseDir.MatchString(entry.Name()) {
			dirs = append(dirs, path.Join(root, entry.Name()))
		}
	}

	return dirs, nil
}

// ReadTestFile reads a file from the embedded test data
func ReadTestFile(filePath string) ([]byte, error) {
	if strings.HasPrefix(filePath, "inspect/") {
		return fs.ReadFile(testdata.InspectTests, filePath)
	}

	return fs.ReadFile(testdata.AcceptanceTests, filePath)
}

// IsErrorTest checks if a case expects a failure
func IsErrorTest(testPath string) bool {
	return strings.HasSuffix(path.Base(testPath), "_err")
}

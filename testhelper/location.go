package testhelper

import "path"

// CaseFile returns the repository path of a golden case file, so failures point at the
// file to update.
func CaseFile(dir, name string) string {
	return path.Join("testdata", dir, name)
}

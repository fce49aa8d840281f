package main

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir matches testing.T.Chdir, which requires Go 1.24: it changes the
// working directory and PWD for the duration of the test and restores the
// original directory in cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		dir, err = os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

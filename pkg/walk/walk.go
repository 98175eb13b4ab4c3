// Package walk traverses a storage tree held in an afero filesystem.
//
// The traversal is iterative so deep trees never grow the goroutine stack,
// and it visits entries in lexical order so callers see deterministic
// results.
package walk

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"tableflip.dev/ideabook/pkg/errdefs"
)

// SkipDir may be returned from a Func to skip the directory being visited.
var SkipDir = errors.New("walk: skip directory")

// Func is called for every entry below the root, the root excluded.
type Func func(path string, info os.FileInfo) error

// Walk visits every file and directory below root. A missing root is not an
// error. Directories are visited before their children.
func Walk(fs afero.Fs, root string, fn Func) error {
	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errdefs.IO("stat", root, err)
	}
	if !info.IsDir() {
		return nil
	}

	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			return errdefs.IO("read dir", dir, err)
		}

		// Children are pushed in reverse so they pop in lexical order.
		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if err := fn(path, entry); err != nil {
				if errors.Is(err, SkipDir) {
					continue
				}
				return err
			}
			if entry.IsDir() {
				subdirs = append(subdirs, path)
			}
		}
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return nil
}

// FindFile reports the first file below root whose name equals name ignoring
// case.
func FindFile(fs afero.Fs, root, name string) (string, bool, error) {
	var found string
	stop := errors.New("found")
	err := Walk(fs, root, func(path string, info os.FileInfo) error {
		if !info.IsDir() && strings.EqualFold(info.Name(), name) {
			found = path
			return stop
		}
		return nil
	})
	if errors.Is(err, stop) {
		return found, true, nil
	}
	return "", false, err
}

// Files lists every regular file below root that satisfies keep.
func Files(fs afero.Fs, root string, keep func(path string, info os.FileInfo) bool) ([]string, error) {
	var out []string
	err := Walk(fs, root, func(path string, info os.FileInfo) error {
		if !info.IsDir() && (keep == nil || keep(path, info)) {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

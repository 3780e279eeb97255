// Package fileio reads and writes line-oriented text files.
package fileio

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Store is the file collaborator used by documents
type Store interface {
	ReadLines(path string) ([]string, error)
	WriteLines(path string, lines []string) error
}

// Disk is a Store over the local filesystem
type Disk struct {
	// Perm is used when creating files, 0644 when zero
	Perm os.FileMode
}

// ReadLines returns the file's lines without terminators
// A trailing newline does not produce an extra empty line, CRLF endings are stripped
func (d Disk) ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return lines, nil
}

// WriteLines writes every line followed by a newline
// Content goes to a temp file in the same directory which is then renamed over path
func (d Disk) WriteLines(path string, lines []string) error {
	perm := d.Perm
	if perm == 0 {
		perm = 0o644
	}
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "create temp for %s", path)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			tmp.Close()
			cleanup()
			return errors.Wrapf(err, "write %s", path)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			cleanup()
			return errors.Wrapf(err, "write %s", path)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		cleanup()
		return errors.Wrapf(err, "flush %s", path)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrapf(err, "close %s", path)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return errors.Wrapf(err, "chmod %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrapf(err, "rename onto %s", path)
	}
	return nil
}

// Entry is one directory listing item
type Entry struct {
	Name  string
	IsDir bool
}

// ListDir returns the entries of dir, following symlinks to classify directories
func ListDir(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}
	out := make([]Entry, 0, len(des))
	for _, de := range des {
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, de.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		out = append(out, Entry{Name: de.Name(), IsDir: isDir})
	}
	return out, nil
}

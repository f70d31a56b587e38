package generator

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// journal records what a run changed so a failed run can be undone.
type journal struct {
	dirs  []string
	files []writtenFile
}

type writtenFile struct {
	path    string
	existed bool
	prev    []byte
	mode    fs.FileMode
}

// beforeMkdir records the topmost ancestor of dir that does not exist yet.
func (j *journal) beforeMkdir(dir string) error {
	top, err := firstMissing(dir)
	if err != nil {
		return err
	}
	if top != "" {
		j.dirs = append(j.dirs, top)
	}
	return nil
}

// beforeWrite snapshots the file at path, if any.
func (j *journal) beforeWrite(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		j.files = append(j.files, writtenFile{path: path})
		return nil
	}
	if err != nil {
		return err
	}
	prev, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	j.files = append(j.files, writtenFile{path: path, existed: true, prev: prev, mode: info.Mode().Perm()})
	return nil
}

// undo reverts files, then directories, newest first. It keeps going past
// failures and returns them joined.
func (j *journal) undo() error {
	var errs []error
	for i := len(j.files) - 1; i >= 0; i-- {
		f := j.files[i]
		if f.existed {
			errs = append(errs, os.WriteFile(f.path, f.prev, f.mode))
			continue
		}
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	for i := len(j.dirs) - 1; i >= 0; i-- {
		errs = append(errs, os.RemoveAll(j.dirs[i]))
	}
	return errors.Join(errs...)
}

// firstMissing walks up from path and returns the highest ancestor (or path
// itself) that does not exist, or "" when path exists.
func firstMissing(path string) (string, error) {
	top := ""
	for p := filepath.Clean(path); ; {
		_, err := os.Stat(p)
		if err == nil {
			return top, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		top = p
		parent := filepath.Dir(p)
		if parent == p {
			return top, nil
		}
		p = parent
	}
}

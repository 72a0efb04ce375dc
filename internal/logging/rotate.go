package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	defaultMaxSize    = 10 << 20
	defaultMaxBackups = 5
)

// rotatingFile appends to path and, once a write would take it past
// maxSize, renames it to name.1.ext, shifting older backups up by one.
// Callers serialize access.
type rotatingFile struct {
	path       string
	maxSize    int64
	maxBackups int

	f    *os.File
	size int64
}

func openRotatingFile(path string, maxSize int64, maxBackups int) (*rotatingFile, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("unable to get home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}

	r := &rotatingFile{path: path, maxSize: maxSize, maxBackups: maxBackups}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rotatingFile) open() error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("unable to stat log file: %w", err)
	}
	r.f = f
	r.size = info.Size()
	return nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	if r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.f.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *rotatingFile) rotate() error {
	if err := r.f.Close(); err != nil {
		return err
	}
	if err := shiftBackups(r.path, r.maxBackups); err != nil {
		// Keep writing to the live file rather than losing lines.
		if oerr := r.open(); oerr != nil {
			return oerr
		}
		return err
	}
	return r.open()
}

func (r *rotatingFile) Close() error {
	return r.f.Close()
}

// shiftBackups renames name.N.ext to name.N+1.ext, newest last, removes
// backups at or past maxBackups and moves the live file to name.1.ext.
func shiftBackups(path string, maxBackups int) error {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	backup := func(n int) string {
		return stem + "." + strconv.Itoa(n) + ext
	}

	existing, err := backupNumbers(stem, ext)
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.IntSlice(existing)))

	for _, n := range existing {
		if n >= maxBackups {
			os.Remove(backup(n))
			continue
		}
		if err := os.Rename(backup(n), backup(n+1)); err != nil {
			return fmt.Errorf("failed to rotate %s: %w", backup(n), err)
		}
	}
	if err := os.Rename(path, backup(1)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to rotate current log: %w", err)
	}
	return nil
}

// backupNumbers lists N for every stem.N.ext next to the log.
func backupNumbers(stem, ext string) ([]int, error) {
	matches, err := filepath.Glob(globEscape(stem) + ".*" + globEscape(ext))
	if err != nil {
		return nil, err
	}
	var nums []int
	for _, m := range matches {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(m, stem+"."), ext))
		if err == nil && n > 0 {
			nums = append(nums, n)
		}
	}
	return nums, nil
}

func globEscape(s string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`)
	return r.Replace(s)
}

package core

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// Files performs the size and deletion operations the cleanup engine needs
// on top of an afero filesystem. Production code uses the OS filesystem;
// tests swap in an in-memory one.
type Files struct {
	fs  afero.Fs
	now func() time.Time

	warnings []string
}

// NewFiles wraps the given filesystem.
func NewFiles(fsys afero.Fs) *Files {
	return &Files{fs: fsys, now: time.Now}
}

// OSFiles returns a Files backed by the real operating system filesystem.
func OSFiles() *Files {
	return NewFiles(afero.NewOsFs())
}

// WithClock overrides the time source used for age comparisons.
func (f *Files) WithClock(now func() time.Time) *Files {
	f.now = now
	return f
}

// Warnings returns entries that could not be read while sizing.
func (f *Files) Warnings() []string {
	return append([]string(nil), f.warnings...)
}

func (f *Files) addWarning(msg string) {
	if len(f.warnings) < 500 {
		f.warnings = append(f.warnings, msg)
	}
}

// QuoteGlob escapes every glob metacharacter in s, so the result matches s
// literally when used as a prefix of a pattern.
func QuoteGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		case '\\':
			b.WriteString(`[\\]`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve expands a glob pattern into the paths it matches, sorted. A
// pattern without matches resolves to nothing. Callers quote literal
// segments with QuoteGlob.
func (f *Files) Resolve(pattern string) ([]string, error) {
	matches, err := afero.Glob(f.fs, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "expand %q", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// SizeOf sums the sizes of all regular files below path. A missing path
// has size zero. Unreadable entries are skipped and recorded as warnings.
func (f *Files) SizeOf(path string) (int64, error) {
	info, err := f.lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "stat %s", path)
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	var total int64
	walkErr := afero.Walk(f.fs, path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			// Permission denied or vanished entry: skip, don't fail.
			f.addWarning("cannot read " + p + ": " + err.Error())
			return nil
		}
		if fi.Mode().IsRegular() {
			total += fi.Size()
		}
		return nil
	})
	if walkErr != nil {
		return total, errors.Wrapf(walkErr, "walk %s", path)
	}
	return total, nil
}

// EraseContents removes every entry inside dir, hidden entries included,
// and leaves dir itself in place. Removal continues past individual
// failures; the first failure is returned with the rest attached.
func (f *Files) EraseContents(dir string) error {
	entries, err := f.readDir(dir)
	if err != nil {
		return err
	}

	var result error
	for _, entry := range entries {
		p := filepath.Join(dir, entry.Name())
		if err := f.fs.RemoveAll(p); err != nil {
			result = errors.CombineErrors(result, errors.Wrapf(err, "remove %s", p))
		}
	}
	return result
}

// DeleteMatching removes regular files in dir whose path relative to dir
// matches pattern and whose age in whole days is strictly greater than
// minAgeDays. A minAgeDays of zero or less disables the age filter.
//
// Patterns without a path separator or "**" only consider the immediate
// contents of dir. Subdirectories are never removed.
func (f *Files) DeleteMatching(dir, pattern string, minAgeDays int) ([]string, error) {
	eligible, err := f.eligible(dir, pattern, minAgeDays)
	if err != nil {
		return nil, err
	}

	var removed []string
	var result error
	for _, c := range eligible {
		if err := f.fs.Remove(c.path); err != nil {
			result = errors.CombineErrors(result, errors.Wrapf(err, "remove %s", c.path))
			continue
		}
		removed = append(removed, c.path)
	}
	return removed, result
}

// SizeMatching sums the sizes of the files DeleteMatching would remove
// right now. A missing dir has size zero.
func (f *Files) SizeMatching(dir, pattern string, minAgeDays int) (int64, error) {
	if _, err := f.fs.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	eligible, err := f.eligible(dir, pattern, minAgeDays)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, c := range eligible {
		total += c.info.Size()
	}
	return total, nil
}

// eligible lists files below dir matching pattern and older than
// minAgeDays.
func (f *Files) eligible(dir, pattern string, minAgeDays int) ([]candidate, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf("invalid pattern %q", pattern)
	}

	candidates, err := f.candidates(dir, pattern)
	if err != nil {
		return nil, err
	}
	if minAgeDays <= 0 {
		return candidates, nil
	}

	now := f.now()
	var out []candidate
	for _, c := range candidates {
		if ageInDays(now, c.info.ModTime()) > minAgeDays {
			out = append(out, c)
		}
	}
	return out, nil
}

type candidate struct {
	path string
	info os.FileInfo
}

func (f *Files) candidates(dir, pattern string) ([]candidate, error) {
	recursive := strings.Contains(pattern, "**") || strings.Contains(pattern, "/")

	if !recursive {
		entries, err := f.readDir(dir)
		if err != nil {
			return nil, err
		}
		var out []candidate
		for _, entry := range entries {
			if !entry.Mode().IsRegular() {
				continue
			}
			if ok, _ := doublestar.Match(pattern, entry.Name()); ok {
				out = append(out, candidate{path: filepath.Join(dir, entry.Name()), info: entry})
			}
		}
		return out, nil
	}

	if _, err := f.readDir(dir); err != nil {
		return nil, err
	}
	var out []candidate
	err := afero.Walk(f.fs, dir, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			f.addWarning("cannot read " + p + ": " + err.Error())
			return nil
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			out = append(out, candidate{path: p, info: fi})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", dir)
	}
	return out, nil
}

// ageInDays returns the number of whole days elapsed since mod.
func ageInDays(now, mod time.Time) int {
	if mod.After(now) {
		return 0
	}
	return int(now.Sub(mod) / (24 * time.Hour))
}

func (f *Files) readDir(dir string) ([]os.FileInfo, error) {
	info, err := f.fs.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf("%s is not a directory", dir)
	}
	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", dir)
	}
	return entries, nil
}

func (f *Files) lstat(path string) (os.FileInfo, error) {
	if l, ok := f.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return f.fs.Stat(path)
}

// Package lockfile records the SHA-256 checksums of a project file and the
// SQL compiled from it, so a later check can tell when the SQL is stale or
// was edited by hand.
//
// Format: the first line is the aggregate checksum, then one
// "<checksum> <path>" line per file, with paths relative to the lock file.
package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hlop3z/tabula/internal/alerr"
)

// FileName is the lock file written next to the compiled output.
const FileName = "tabula.lock"

// Entry represents a single file entry in the lock file.
type Entry struct {
	Filename string
	Checksum string
}

// LockFile represents the parsed contents of a lock file.
type LockFile struct {
	Aggregate string  // SHA-256 of all individual checksums combined
	Entries   []Entry // Individual file checksums
}

// PathFor returns the lock path for a compiled output file.
func PathFor(output string) string {
	return filepath.Join(filepath.Dir(output), FileName)
}

// Read reads and parses a lock file from the given path.
// Returns nil if the file does not exist.
func Read(path string) (*LockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, alerr.Wrap(alerr.ErrIO, err, "failed to read lock file").WithFile(path)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	lf := &LockFile{
		Aggregate: strings.TrimSpace(lines[0]),
	}
	if lf.Aggregate == "" {
		return nil, alerr.New(alerr.ErrIO, "lock file is empty").WithFile(path)
	}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sum, name, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		lf.Entries = append(lf.Entries, Entry{
			Filename: strings.TrimSpace(name),
			Checksum: sum,
		})
	}

	return lf, nil
}

// Write records the checksums of files in a lock file at lockPath.
func Write(lockPath string, files ...string) error {
	dir := filepath.Dir(lockPath)
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		name, err := relative(dir, f)
		if err != nil {
			return alerr.Wrap(alerr.ErrIO, err, "failed to resolve path").WithFile(f)
		}
		sum, err := checksum(f)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Filename: name, Checksum: sum})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Filename, b.Filename)
	})

	var sb strings.Builder
	sb.WriteString(computeAggregate(entries) + "\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s %s\n", e.Checksum, e.Filename)
	}

	if err := os.WriteFile(lockPath, []byte(sb.String()), 0o644); err != nil {
		return alerr.Wrap(alerr.ErrIO, err, "failed to write lock file").WithFile(lockPath)
	}
	return nil
}

// VerificationResult holds detailed results of lock file verification.
type VerificationResult struct {
	LockFileExists bool     // Whether lock file exists
	ModifiedFiles  []string // Files whose checksum changed
	RemovedFiles   []string // Files in lock but not on disk
	VerifiedFiles  []string // Files that passed verification
}

// Valid reports whether the lock exists and every file matches.
func (r *VerificationResult) Valid() bool {
	return r.LockFileExists && len(r.ModifiedFiles) == 0 && len(r.RemovedFiles) == 0
}

// Verify re-hashes every file listed in the lock at lockPath. A missing
// lock file is reported in the result, not as an error.
func Verify(lockPath string) (*VerificationResult, error) {
	result := &VerificationResult{}

	lf, err := Read(lockPath)
	if err != nil || lf == nil {
		return result, err
	}
	result.LockFileExists = true

	dir := filepath.Dir(lockPath)
	for _, e := range lf.Entries {
		sum, err := checksum(filepath.Join(dir, filepath.FromSlash(e.Filename)))
		switch {
		case alerr.Is(err, alerr.ErrIO) && errors.Is(err, fs.ErrNotExist):
			result.RemovedFiles = append(result.RemovedFiles, e.Filename)
		case err != nil:
			return nil, err
		case sum != e.Checksum:
			result.ModifiedFiles = append(result.ModifiedFiles, e.Filename)
		default:
			result.VerifiedFiles = append(result.VerifiedFiles, e.Filename)
		}
	}

	return result, nil
}

// relative expresses path relative to dir, with forward slashes.
func relative(dir, path string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// checksum returns the hex SHA-256 of a file.
func checksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", alerr.Wrap(alerr.ErrIO, err, "failed to read file").WithFile(path)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// computeAggregate computes the aggregate SHA-256 from all individual checksums.
func computeAggregate(entries []Entry) string {
	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e.Checksum))
	}
	return hex.EncodeToString(h.Sum(nil))
}

package filesystem

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStats holds basic statistics about a file.
type FileStats struct {
	Size    int64
	IsDir   bool
	ModTime time.Time
	Mode    os.FileMode
}

// Adapter defines an interface for interacting with the file system. It keeps
// the document service testable and concentrates every byte-level read/write
// behind one boundary.
type Adapter interface {
	ReadFileBytes(filePath string) ([]byte, error)
	WriteFileBytesAtomic(filePath string, content []byte, perm os.FileMode) error
	FileExists(filePath string) (bool, error)
	GetFileStats(filePath string) (*FileStats, error)
	// EnsureDir creates the directory (and parents) if needed. Idempotent:
	// an already existing directory is not an error.
	EnsureDir(dirPath string) error
	NormalizeNewlines(content []byte) []byte
	SplitLines(content []byte) []string
	JoinLinesWithNewlines(lines []string) []byte
}

// CheckDirectoryIsWritable verifies that a directory exists and that a file
// can actually be created inside it.
func CheckDirectoryIsWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s: %w", path, err)
		}
		return fmt.Errorf("could not stat path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	// #nosec G404 -- rand is okay for temp file names
	tmpName := fmt.Sprintf("writable_test_%d_%d.tmp", time.Now().UnixNano(), rand.Intn(100000))
	tmpPath := filepath.Join(path, tmpName)
	file, err := os.Create(tmpPath)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("permission denied to write in directory %s: %w", path, err)
		}
		return fmt.Errorf("error creating temporary file in %s: %w", path, err)
	}
	_ = file.Close()
	_ = os.Remove(tmpPath)
	return nil
}

// DefaultAdapter is the standard implementation of Adapter using the os
// package.
type DefaultAdapter struct{}

// NewDefaultAdapter creates a new DefaultAdapter.
func NewDefaultAdapter() *DefaultAdapter {
	return &DefaultAdapter{}
}

var _ Adapter = (*DefaultAdapter)(nil)

// ReadFileBytes reads the entire file into a byte slice.
func (fs *DefaultAdapter) ReadFileBytes(filePath string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s: %w", filePath, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied reading file: %s: %w", filePath, err)
		}
		return nil, fmt.Errorf("failed to read file: %s: %w", filePath, err)
	}
	return content, nil
}

// WriteFileBytesAtomic writes content to a file atomically: a temp file in the
// same directory is written and closed first, then renamed over the target,
// then chmodded to the final permissions.
func (fs *DefaultAdapter) WriteFileBytesAtomic(filePath string, content []byte, finalPerm os.FileMode) error {
	dir := filepath.Dir(filePath)

	tempFile, err := os.CreateTemp(dir, filepath.Base(filePath)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	// Harmless after a successful rename.
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write to temporary file %s: %w", tempFile.Name(), err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file %s: %w", tempFile.Name(), err)
	}
	if err := os.Rename(tempFile.Name(), filePath); err != nil {
		return fmt.Errorf("failed to rename temporary file %s to %s: %w", tempFile.Name(), filePath, err)
	}
	if err := os.Chmod(filePath, finalPerm); err != nil {
		return fmt.Errorf("file written to %s, but failed to set final permissions to %o: %w", filePath, finalPerm, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (fs *DefaultAdapter) FileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("error checking if file exists %s: %w", filePath, err)
}

// GetFileStats retrieves statistics for a given file.
func (fs *DefaultAdapter) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found for stats: %s: %w", filePath, err)
		}
		return nil, fmt.Errorf("failed to get file stats for %s: %w", filePath, err)
	}
	return &FileStats{
		Size:    info.Size(),
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
		Mode:    info.Mode().Perm(),
	}, nil
}

// EnsureDir creates dirPath and any missing parents. Creating a directory
// that already exists is a no-op, not an error.
func (fs *DefaultAdapter) EnsureDir(dirPath string) error {
	if dirPath == "" || dirPath == "." {
		return nil
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// NormalizeNewlines converts all newline variations (\r\n and \r) to \n.
func (fs *DefaultAdapter) NormalizeNewlines(content []byte) []byte {
	if len(content) == 0 {
		return []byte{}
	}
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))
}

// SplitLines splits the content by \n after normalizing newlines, dropping
// the trailing empty line produced by a final newline.
func (fs *DefaultAdapter) SplitLines(content []byte) []string {
	if len(content) == 0 {
		return []string{}
	}
	sContent := string(fs.NormalizeNewlines(content))
	if sContent == "\n" {
		return []string{""}
	}
	lines := strings.Split(sContent, "\n")
	if strings.HasSuffix(sContent, "\n") && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLinesWithNewlines joins lines with \n, with no trailing newline.
func (fs *DefaultAdapter) JoinLinesWithNewlines(lines []string) []byte {
	if len(lines) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(lines, "\n"))
}

// Package storage persists inquiry attachments. Files are staged first
// and promoted into their final location only after the inquiry record
// exists, which narrows the window where a record can point at a missing
// file.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Attachment kinds, used as storage namespaces.
const (
	KindRequirements = "requirements"
	KindNDA          = "nda"
)

// FileStore stages, promotes and discards inquiry attachments.
type FileStore interface {
	Stage(kind, filename string, r io.Reader) (stagedPath string, err error)
	Promote(stagedPath, kind string, inquiryID uuid.UUID, filename string) (finalPath string, err error)
	Discard(stagedPath string)
	PurgeStaged(olderThan time.Duration) (int, error)
}

// DiskStore keeps attachments on the local filesystem under
// {root}/inquiries/{kind}/{inquiryID}_{filename}, with a staging area at
// {root}/staging.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	for _, dir := range []string{
		filepath.Join(root, "staging"),
		filepath.Join(root, "inquiries", KindRequirements),
		filepath.Join(root, "inquiries", KindNDA),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Stage(kind, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s_%s", uuid.New().String(), kind, filepath.Base(filename))
	path := filepath.Join(s.root, "staging", name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", filename, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("stage %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("stage %s: %w", filename, err)
	}
	return path, nil
}

// Promote moves a staged file into its final namespaced location and
// returns the path stored on the inquiry record, relative to the root.
func (s *DiskStore) Promote(stagedPath, kind string, inquiryID uuid.UUID, filename string) (string, error) {
	rel := filepath.Join("inquiries", kind,
		fmt.Sprintf("%s_%s", inquiryID.String(), filepath.Base(filename)))
	dst := filepath.Join(s.root, rel)

	if err := os.Rename(stagedPath, dst); err != nil {
		return "", fmt.Errorf("promote %s: %w", filename, err)
	}
	return rel, nil
}

func (s *DiskStore) Discard(stagedPath string) {
	if stagedPath == "" {
		return
	}
	os.Remove(stagedPath)
}

// PurgeStaged removes staged files older than the given age and returns
// how many were deleted. Run periodically to clean up after aborted
// submissions.
func (s *DiskStore) PurgeStaged(olderThan time.Duration) (int, error) {
	dir := filepath.Join(s.root, "staging")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// Package source places the bridge payload on disk, either by unpacking a
// prebuilt release archive or by cloning the source repository.
package source

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Fetcher materialises the bridge under InstallDir.
type Fetcher struct {
	InstallDir string
	// Entrypoint is the file whose presence proves the payload is in place.
	Entrypoint string
	// ArchivePath is the prebuilt release zip; primary strategy.
	ArchivePath string
	// Repo is the git URL for the source-clone fallback.
	Repo string
}

// Installed reports whether the payload entrypoint exists.
func (f *Fetcher) Installed() (bool, string) {
	target := filepath.Join(f.InstallDir, f.Entrypoint)
	if _, err := os.Stat(target); err != nil {
		return false, fmt.Sprintf("%s absent", target)
	}
	return true, ""
}

// ExtractArchive unpacks the release zip into InstallDir.
func (f *Fetcher) ExtractArchive(ctx context.Context) error {
	if f.ArchivePath == "" {
		return fmt.Errorf("no release archive configured")
	}
	reader, err := zip.OpenReader(f.ArchivePath)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", f.ArchivePath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(f.InstallDir, 0o755); err != nil {
		return err
	}

	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractOne(file, f.InstallDir); err != nil {
			return fmt.Errorf("extract %s: %w", file.Name, err)
		}
	}
	return nil
}

func extractOne(file *zip.File, dest string) error {
	cleaned := filepath.Clean(file.Name)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("archive entry escapes the install dir")
	}
	target := filepath.Join(dest, cleaned)

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// CloneSource shallow-clones the bridge repository into InstallDir. This is
// the fallback when no release archive is available on the machine.
func (f *Fetcher) CloneSource(ctx context.Context) error {
	if f.Repo == "" {
		return fmt.Errorf("no source repository configured")
	}
	_, err := git.PlainCloneContext(ctx, f.InstallDir, false, &git.CloneOptions{
		URL:   f.Repo,
		Depth: 1,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", f.Repo, err)
	}
	return nil
}

// Remove deletes the install dir. It doubles as the step reset and the
// teardown resource; absence is success.
func (f *Fetcher) Remove(ctx context.Context) error {
	if err := os.RemoveAll(f.InstallDir); err != nil {
		return fmt.Errorf("remove install dir %s: %w", f.InstallDir, err)
	}
	return nil
}

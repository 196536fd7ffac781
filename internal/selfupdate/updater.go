package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrNoAsset       = errors.New("release has no build for this platform")
)

const (
	maxArchiveSize   = 256 << 20
	maxChecksumsSize = 1 << 20
)

// UpdateInput selects the release to install. An empty TargetVersion
// means the latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported once per stage: check, verify, download,
// extract, apply, done.
type UpdateProgress struct {
	Stage   string
	Message string
}

// Update installs a release over the running binary. The archive is
// streamed to disk next to the binary, checked against the release's
// checksums file, and the extracted binary is renamed into place.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if isDevBuild(input.CurrentVersion) {
		return ErrDevBuild
	}
	if progress == nil {
		progress = func(UpdateProgress) {}
	}

	progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
	rel, err := c.fetchRelease(ctx, input.TargetVersion)
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	cmp := semver.Compare(canonical(rel.TagName), canonical(input.CurrentVersion))
	if cmp == 0 || (input.TargetVersion == "" && cmp < 0) {
		return ErrAlreadyLatest
	}

	archive, err := archiveName(rel.TagName, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	archiveAsset, ok := findAsset(rel.Assets, archive)
	if !ok {
		return fmt.Errorf("%w: %s missing from %s", ErrNoAsset, archive, rel.TagName)
	}
	sumsAsset, ok := findAsset(rel.Assets, checksumsName(rel.TagName))
	if !ok {
		return fmt.Errorf("%w: %s has no checksums file", ErrChecksum, rel.TagName)
	}

	targetPath, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Fetching checksums..."})
	var sums bytes.Buffer
	if _, err := c.download(ctx, sumsAsset.DownloadURL, &sums, maxChecksumsSize); err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums.Bytes())[archive]
	if !ok {
		return fmt.Errorf("%w: no checksum for %s", ErrChecksum, archive)
	}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", rel.TagName)})
	tmp, err := os.CreateTemp(filepath.Dir(targetPath), "."+binaryName+"-download-*")
	if err != nil {
		return fmt.Errorf("create download file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	got, err := c.download(ctx, archiveAsset.DownloadURL, tmp, maxArchiveSize)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	if !strings.EqualFold(got, want) {
		return fmt.Errorf("%w: %s: expected %s, got %s", ErrChecksum, archive, want, got)
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	err = replaceBinary(targetPath, func(w io.Writer) error {
		return extractBinary(tmp, archive, w)
	})
	if err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", rel.TagName)})
	return nil
}

// archiveName is the release archive for a platform, for example
// memorymaster_1.4.0_linux_amd64.tar.gz. Windows builds ship as zip.
func archiveName(tag, goos, goarch string) (string, error) {
	switch goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	ext := ".tar.gz"
	switch goos {
	case "linux", "darwin":
	case "windows":
		ext = ".zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	return fmt.Sprintf("%s_%s_%s_%s%s", binaryName, strings.TrimPrefix(tag, "v"), goos, goarch, ext), nil
}

func checksumsName(tag string) string {
	return fmt.Sprintf("%s_%s_checksums.txt", binaryName, strings.TrimPrefix(tag, "v"))
}

func findAsset(assets []Asset, name string) (Asset, bool) {
	for _, a := range assets {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}

// download copies the body at url into w, refusing bodies over limit,
// and returns the hex sha256 of what was written.
func (c *Checker) download(ctx context.Context, url string, w io.Writer, limit int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(w, h), io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", err
	}
	if n > limit {
		return "", fmt.Errorf("%s is larger than %d bytes", url, limit)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// parseChecksums reads sha256sum output. A leading '*' on the file name
// (binary mode) is ignored.
func parseChecksums(data []byte) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		result[strings.TrimPrefix(parts[1], "*")] = parts[0]
	}
	return result
}

// extractBinary writes the memorymaster executable inside archive to w.
func extractBinary(archive *os.File, name string, w io.Writer) error {
	if strings.HasSuffix(name, ".zip") {
		info, err := archive.Stat()
		if err != nil {
			return err
		}
		return extractFromZip(archive, info.Size(), binaryName+".exe", w)
	}
	if _, err := archive.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return extractFromTarGz(archive, binaryName, w)
}

func extractFromTarGz(r io.Reader, name string, w io.Writer) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			_, err := io.Copy(w, io.LimitReader(tr, maxArchiveSize))
			return err
		}
	}
	return fmt.Errorf("binary %q not found in archive", name)
}

func extractFromZip(r io.ReaderAt, size int64, name string, w io.Writer) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		_, err = io.Copy(w, io.LimitReader(rc, maxArchiveSize))
		return err
	}
	return fmt.Errorf("binary %q not found in archive", name)
}

// replaceBinary writes a new binary beside targetPath with the same mode
// and renames it over the target. On Windows the running executable is
// moved aside first since it cannot be overwritten.
func replaceBinary(targetPath string, write func(io.Writer) error) error {
	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(targetPath), "."+binaryName+"-new-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(info.Mode().Perm()); err != nil {
		_ = f.Close()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if runtime.GOOS == "windows" {
		old := targetPath + ".old"
		_ = os.Remove(old)
		if err := os.Rename(targetPath, old); err != nil {
			return fmt.Errorf("move old binary: %w", err)
		}
	}
	if err := os.Rename(tmpPath, targetPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

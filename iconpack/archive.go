package iconpack

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/pierrec/lz4"
)

// ArchiveExtension is the file extension used for exported pack archives.
const ArchiveExtension = ".iconpack"

// ExportPack writes a pack as an lz4-compressed tar stream: one top-level
// directory named after the pack, one entry per registered icon.
func (m *Manager) ExportPack(name string, w io.Writer) error {
	m.mu.RLock()
	p, ok := m.byName[name]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown icon pack %q", name)
	}
	icons := p.Icons()

	zw := lz4.NewWriter(w)
	tw := tar.NewWriter(zw)

	now := time.Now()
	for _, icon := range icons {
		hdr := &tar.Header{
			Name:    name + "/" + icon.Name,
			Mode:    0o644,
			Size:    int64(len(icon.Content)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write archive header: %w", err)
		}
		if _, err := tw.Write(icon.Content); err != nil {
			return fmt.Errorf("failed to write archive entry: %w", err)
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return zw.Close()
}

// ImportPack reads an archive produced by ExportPack, creates the pack
// directory and registers every icon. Returns the imported pack name.
func (m *Manager) ImportPack(r io.Reader) (string, error) {
	tr := tar.NewReader(lz4.NewReader(r))

	packName := ""
	imported := 0
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		clean := path.Clean(hdr.Name)
		dir, file := path.Split(clean)
		dir = strings.Trim(dir, "/")
		if dir == "" || file == "" || strings.Contains(dir, "/") || strings.Contains(clean, "..") {
			return "", fmt.Errorf("malformed archive entry %q", hdr.Name)
		}

		if packName == "" {
			packName = NormalizeName(dir)
			if err := m.CreatePackDir(packName); err != nil {
				return "", err
			}
		} else if NormalizeName(dir) != packName {
			return "", fmt.Errorf("archive mixes packs %q and %q", packName, dir)
		}

		content, err := io.ReadAll(tr)
		if err != nil {
			return "", fmt.Errorf("failed to read archive entry %q: %w", hdr.Name, err)
		}
		if err := m.CreateFile(packName, file, content); err != nil {
			return "", err
		}
		m.AddIcon(packName, file, content)
		imported++
	}

	if packName == "" {
		return "", fmt.Errorf("archive contains no icons")
	}
	log.Printf("[ICONPACK] Imported pack %s with %d icons", packName, imported)
	return packName, nil
}

// Package script runs batch JavaScript against the icon pack registry, for
// headless automation like bulk imports or pack audits.
package script

import (
	"context"
	"fmt"
	"os"
	"time"

	"iconstudio/iconpack"

	"github.com/dop251/goja"
)

// IconPacks is the host object exposed to scripts as `iconpacks`.
type IconPacks struct {
	manager *iconpack.Manager
}

func (ip *IconPacks) List() []string {
	packs := ip.manager.All()
	names := make([]string, len(packs))
	for i, pack := range packs {
		names[i] = pack.Name
	}
	return names
}

func (ip *IconPacks) Exists(name string) bool {
	return ip.manager.Exists(iconpack.NormalizeName(name))
}

// Create normalizes the name, creates the pack directory and returns the
// normalized name.
func (ip *IconPacks) Create(name string) (string, error) {
	normalized := iconpack.NormalizeName(name)
	if normalized == "" {
		return "", fmt.Errorf("icon pack name is empty")
	}
	if err := ip.manager.CreatePackDir(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func (ip *IconPacks) Delete(name string) error {
	return ip.manager.DeletePack(name)
}

func (ip *IconPacks) Prefix(name string) (string, error) {
	pack, ok := ip.manager.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown icon pack %q", name)
	}
	return pack.Prefix, nil
}

func (ip *IconPacks) Icons(name string) ([]string, error) {
	pack, ok := ip.manager.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown icon pack %q", name)
	}
	icons := pack.Icons()
	names := make([]string, len(icons))
	for i, icon := range icons {
		names[i] = icon.Name
	}
	return names, nil
}

func (ip *IconPacks) Count(name string) (int, error) {
	pack, ok := ip.manager.Get(name)
	if !ok {
		return 0, fmt.Errorf("unknown icon pack %q", name)
	}
	return pack.IconCount(), nil
}

// AddIcon persists and registers icon content. Non-SVG content is rejected.
func (ip *IconPacks) AddIcon(pack, file, content string) error {
	raw := []byte(content)
	if iconpack.MimeTypeFor(file, raw) != iconpack.SVGMimeType {
		return fmt.Errorf("%s is not a SVG file", file)
	}
	if err := ip.manager.CreateFile(pack, file, raw); err != nil {
		return err
	}
	ip.manager.AddIcon(pack, file, raw)
	return nil
}

// AddFile reads an SVG from disk and adds it under its own base name.
func (ip *IconPacks) AddFile(pack, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return ip.AddIcon(pack, iconpack.IconNameFromPath(path), string(content))
}

// Refresh resyncs the registry from the pack's directory and returns the
// file count.
func (ip *IconPacks) Refresh(name string) (int, error) {
	files, err := ip.manager.ListPackFiles(name)
	if err != nil {
		return 0, err
	}
	for _, path := range files {
		content, err := ip.manager.ReadIconFile(path)
		if err != nil {
			return 0, err
		}
		ip.manager.AddIcon(name, iconpack.IconNameFromPath(path), content)
	}
	return len(files), nil
}

func (ip *IconPacks) Export(name, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ip.manager.ExportPack(name, f)
}

func (ip *IconPacks) Import(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return ip.manager.ImportPack(f)
}

// Timeout after 60 seconds
func Execute(manager *iconpack.Manager, src, scriptName string) (goja.Value, error) {
	vm := goja.New()
	host := &IconPacks{manager: manager}

	// Utility functions
	vm.Set("sprintf", fmt.Sprintf)
	vm.Set("printf", fmt.Printf)
	vm.Set("println", fmt.Println)
	vm.Set("iconpacks", host)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(60*time.Second))
	defer cancel()

	// Channel to receive result or error
	resultCh := make(chan struct {
		val goja.Value
		err error
	})

	// Run script in a goroutine
	go func() {
		val, err := vm.RunString(src)
		resultCh <- struct {
			val goja.Value
			err error
		}{val, err}
	}()

	select {
	case <-ctx.Done():
		vm.Interrupt("timeout")
		return nil, fmt.Errorf("script %s timed out: %w", scriptName, ctx.Err())
	case res := <-resultCh:
		if res.err != nil {
			return nil, fmt.Errorf("failed to run script %s: %w", scriptName, res.err)
		}
		return res.val, nil
	}
}

// ExecuteFile runs a script file against the registry.
func ExecuteFile(manager *iconpack.Manager, path string) (goja.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return Execute(manager, string(src), iconpack.IconNameFromPath(path))
}

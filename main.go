package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"iconstudio/api"
	"iconstudio/app"
	"iconstudio/iconpack"
	"iconstudio/script"
	"iconstudio/storage"

	_ "github.com/ebitengine/hideconsole"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var headless bool
	var scriptPath string
	var apiAddr string
	flag.BoolVar(&headless, "headless", false, "Run without GUI, serving the WebSocket API only")
	flag.BoolVar(&headless, "h", false, "Run without GUI, serving the WebSocket API only (shorthand)")
	flag.StringVar(&scriptPath, "script", "", "Run a JavaScript batch script against the registry and exit")
	flag.StringVar(&scriptPath, "s", "", "Run a JavaScript batch script against the registry and exit (shorthand)")
	flag.StringVar(&apiAddr, "addr", ":42069", "WebSocket API listen address")
	flag.Parse()

	if err := iconpack.Initialize(storage.PacksDir()); err != nil {
		log.Fatalf("[MAIN] Could not initialize icon pack registry: %v", err)
	}

	// Support a positional archive argument so double-clicking a
	// .iconpack file passes the path through
	var importPath string
	if args := flag.Args(); len(args) > 0 {
		candidate := filepath.Clean(args[0])
		if strings.EqualFold(filepath.Ext(candidate), iconpack.ArchiveExtension) {
			if _, err := os.Stat(candidate); err == nil {
				importPath = candidate
			}
		}
	}
	if importPath != "" {
		if name, err := importArchive(importPath); err != nil {
			log.Printf("[MAIN] Could not import %s: %v", importPath, err)
		} else {
			log.Printf("[MAIN] Imported icon pack %s from %s", name, importPath)
		}
	}

	if scriptPath != "" {
		if _, err := script.ExecuteFile(iconpack.Default(), scriptPath); err != nil {
			log.Fatalf("[MAIN] Script failed: %v", err)
		}
		return
	}

	lockPath := storage.DataFile(app.LockFileName)
	lockFile, lockOwned, cleanupLock, err := prepareLock(lockPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not create lock file: %v\n", err)
		os.Exit(1)
	}
	_ = lockFile // retained to keep handle open for lifetime
	defer cleanupLock()

	if headless {
		if !lockOwned {
			fmt.Fprintln(os.Stderr, "Another instance is already running.")
			os.Exit(1)
		}
		runHeadless(apiAddr, cleanupLock)
		return
	}

	if !lockOwned {
		fmt.Println("Lock file already existed; another instance may be running.")
	}

	runWithGUI(apiAddr, lockOwned, cleanupLock)
}

func importArchive(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return iconpack.Default().ImportPack(f)
}

func prepareLock(lockPath string) (*os.File, bool, func(), error) {
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	owned := true
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			owned = false
			lockFile, err = os.OpenFile(lockPath, os.O_WRONLY, 0o644)
			if err != nil {
				return nil, false, nil, err
			}
		} else {
			return nil, false, nil, err
		}
	}

	var cleanupOnce sync.Once
	cleanup := func() {
		cleanupOnce.Do(func() {
			if lockFile != nil {
				_ = lockFile.Close()
			}
			if owned {
				os.Remove(lockPath)
			}
		})
	}

	return lockFile, owned, cleanup, nil
}

func runHeadless(apiAddr string, cleanup func()) {
	fmt.Println("Starting Icon Pack Studio in headless mode...")

	go api.StartWebSocketServer(apiAddr)
	fmt.Printf("WebSocket API is available at ws://localhost%s/ws\n", apiAddr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("Received shutdown signal. Cleaning up...")
	cleanup()
	fmt.Println("Shutdown complete.")
}

func runWithGUI(apiAddr string, lockOwned bool, cleanup func()) {
	go api.StartWebSocketServer(apiAddr)
	fmt.Printf("WebSocket API is available at ws://localhost%s/ws\n", apiAddr)

	app.InitClipboard()
	app.InitPanicNotifier()
	app.InitToastManager()

	if !lockOwned {
		app.Notify("Another instance appears to be running. Changes may conflict.", app.NoticeWarning)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalChan
		fmt.Println("Received shutdown signal. Cleaning up...")
		cleanup()
		os.Exit(0)
	}()

	ebiten.SetWindowTitle("Icon Pack Studio")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 800)

	game := app.New(iconpack.Default())
	if err := ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{
		X11ClassName:    "Icon Pack Studio",
		X11InstanceName: "iconstudio",
	}); err != nil {
		panic(err)
	}
}

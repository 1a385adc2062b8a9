// Package main is the entry point for the coreedit editing engine demo.
// It exercises the Core API Facade from the command line: every file
// argument is opened as a tab, workspace state is loaded from the
// -workspace directory (or the first argument's directory), and the
// number of open tabs is printed. Nothing is saved on exit. Rendering
// and input handling live elsewhere;
// this is a thin harness, not a presentation layer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JaakkoJSeppala/coreedit/internal/coreedit"
	"github.com/JaakkoJSeppala/coreedit/internal/event"
	"github.com/JaakkoJSeppala/coreedit/internal/project/vfs"
)

func main() {
	os.Exit(run())
}

func run() int {
	workspaceDir := flag.String("workspace", "", "workspace directory to load state from")
	flag.Parse()

	fsys := vfs.NewOSFS()
	facade, err := coreedit.New(fsys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coreedit: failed to initialize: %v\n", err)
		return 1
	}

	event.Subscribe(facade.Bus, func(e event.TabOpened) {
		fmt.Printf("opened tab %d: %s\n", e.TabIndex, e.FilePath)
	})

	ws := *workspaceDir
	if ws == "" && len(flag.Args()) > 0 {
		if abs, absErr := filepath.Abs(flag.Args()[0]); absErr == nil {
			ws = filepath.Dir(abs)
		}
	}

	for _, path := range flag.Args() {
		if _, err := facade.OpenFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "coreedit: failed to open %s: %v\n", path, err)
		}
	}

	if ws != "" {
		state, err := facade.Session().LoadWorkspace(ws)
		if err != nil {
			fmt.Fprintf(os.Stderr, "coreedit: failed to load workspace state: %v\n", err)
		} else {
			fmt.Printf("loaded workspace state: %d previously open file(s)\n", len(state.OpenFiles))
		}
	}

	fmt.Printf("%d tab(s) open\n", facade.TabCount())

	return 0
}

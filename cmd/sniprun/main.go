package main

import (
	"flag"
	"fmt"
	"os"

	"sniprun/internal/catalog"
	"sniprun/internal/clipboard"
	"sniprun/internal/config"
	"sniprun/internal/menu"
	"sniprun/internal/snippet"
	"sniprun/internal/snippets/csvexcel"
	"sniprun/internal/snippets/jsonfmt"
	"sniprun/internal/snippets/todo"
	"sniprun/internal/ui"
)

func main() {
	var (
		configPath string
		dir        string
		scaffold   bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config JSON")
	flag.StringVar(&dir, "dir", "", "Snippets directory override")
	flag.BoolVar(&scaffold, "init", false, "Write manifests for the built-in snippets before starting")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	if dir != "" {
		cfg.Snippets.Dir = dir
	}

	inputReader, inputErr := newLineInput(cfg.HistoryPath())
	if inputErr != nil {
		fmt.Fprintf(os.Stderr, "line editor unavailable, fallback to basic input: %v\n", inputErr)
	}
	defer inputReader.Close()

	clip := clipboard.System{}
	out := os.Stdout
	handlers := map[string]snippet.Snippet{
		"csv2excel": csvexcel.New(clip, out),
		"jsonfmt":   jsonfmt.New(clip, inputReader, out),
		"todo":      todo.New(cfg.TodoStorePath(), out),
	}

	loader := catalog.NewLoader(cfg.Snippets.Dir, handlers, out)
	if scaffold {
		if err := loader.Scaffold(); err != nil {
			fmt.Fprintf(os.Stderr, "init snippets failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote manifests for %d built-in snippets to %s\n", len(handlers), cfg.Snippets.Dir)
	}

	markdown := cfg.UI.Markdown && ui.ColorEnabled() && ui.IsTerminal()
	loop := menu.New(inputReader, out, loader.Load, menu.Options{Markdown: markdown})
	if err := loop.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "session failed: %v\n", err)
		os.Exit(1)
	}
}

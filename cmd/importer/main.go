// Command importer stores the contents of a .txt file as a journal entry.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"example.com/energymanager/internal/config"
	"example.com/energymanager/internal/domain"
	"example.com/energymanager/internal/logging"
	"example.com/energymanager/internal/persistence/sqlite"
)

func main() {
	path := flag.String("file", "", "path to the .txt file to import")
	dbPath := flag.String("db", "", "sqlite database path (defaults to SQLITE_PATH)")
	flag.Parse()

	logging.Init("warn")

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: importer -file entry.txt [-db data.db]")
		os.Exit(2)
	}

	text, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read file: %v\n", err)
		os.Exit(1)
	}
	if len(text) == 0 {
		fmt.Fprintln(os.Stderr, "text file is empty")
		os.Exit(1)
	}

	target := *dbPath
	if target == "" {
		target = config.Load().SQLitePath
	}

	store, err := sqlite.Open(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	service := domain.NewService(store, nil, logging.Logger)
	id, err := service.AddJournalEntry(context.Background(), string(text), "file", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "store entry: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("stored %s as journal entry %d in %s\n", *path, id, target)
}

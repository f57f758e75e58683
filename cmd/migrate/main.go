// Command migrate copies every PersistenceStore collection from one
// backend to another (file, sqlite, or postgres) and records which
// backend was last written to in a sentinel file (set by -sentinel,
// data/store/.last-backend by default), so an operator can tell at a
// glance which store is authoritative.
//
// Usage:
//
//	migrate -from-backend file -from-dsn data/store \
//	        -to-backend postgres -to-dsn "host=localhost user=mudcore dbname=mudcore sslmode=disable"
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/towerkeep/mudcore/internal/config"
	"github.com/towerkeep/mudcore/internal/store"
)

func main() {
	fromBackend := flag.String("from-backend", "file", "Source backend: file, sqlite, or postgres")
	fromDSN := flag.String("from-dsn", "data/store", "Source backend DSN")
	toBackend := flag.String("to-backend", "sqlite", "Destination backend: file, sqlite, or postgres")
	toDSN := flag.String("to-dsn", "data/store.db", "Destination backend DSN")
	sentinelPath := flag.String("sentinel", "data/store/.last-backend", "Path to write the last-used-backend sentinel file")
	dryRun := flag.Bool("dry-run", false, "List what would be migrated without writing anything")
	flag.Parse()

	log.Println("PersistenceStore migration tool")
	log.Printf("source:      %s (%s)", *fromBackend, *fromDSN)
	log.Printf("destination: %s (%s)", *toBackend, *toDSN)

	src, err := store.Open(config.StoreConfig{Backend: *fromBackend, DSN: *fromDSN})
	if err != nil {
		log.Fatalf("failed to open source store: %v", err)
	}
	defer src.Close()

	dst, err := store.Open(config.StoreConfig{Backend: *toBackend, DSN: *toDSN})
	if err != nil {
		log.Fatalf("failed to open destination store: %v", err)
	}
	defer dst.Close()

	var total int
	for _, collection := range store.KnownCollections {
		var records map[string]any
		if err := src.LoadAll(collection, &records); err != nil {
			log.Fatalf("failed to load collection %q: %v", collection, err)
		}
		log.Printf("collection %q: %d record(s)", collection, len(records))
		total += len(records)

		if *dryRun {
			continue
		}
		if err := dst.SaveAll(collection, records); err != nil {
			log.Fatalf("failed to save collection %q: %v", collection, err)
		}
	}

	if *dryRun {
		log.Printf("dry run complete: %d record(s) across %d collection(s) would be migrated", total, len(store.KnownCollections))
		return
	}

	if err := writeSentinel(*sentinelPath, *toBackend); err != nil {
		log.Fatalf("failed to write sentinel file: %v", err)
	}
	log.Printf("migration complete: %d record(s) across %d collection(s)", total, len(store.KnownCollections))
}

// writeSentinel records which backend holds the authoritative copy, so an
// operator who forgets which migration ran last can check one small file
// instead of probing every backend.
func writeSentinel(path, backend string) error {
	content := fmt.Sprintf("backend=%s\nmigrated_at=%s\n", backend, time.Now().UTC().Format(time.RFC3339))
	return os.WriteFile(path, []byte(content), 0644)
}

//go:build ignore

// Command sample_data writes fixtures for local development:
//
//	data/codes.json          a code document with a few available and bound codes
//	data/lists/batch1.txt.gz a gzipped code list for cmd/provision
//	data/lists/batch2.txt    a plain code list for cmd/provision
//
// Run with: go run scripts/sample_data.go
package main

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"codebind/internal/model"
	"codebind/internal/repository"

	"github.com/rs/zerolog"
)

func main() {
	dataDir := "data"
	listDir := filepath.Join(dataDir, "lists")

	if err := os.MkdirAll(listDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	doc := &model.Document{
		Codes: []string{"WELCOME1", "SUMMER2024", "WINTER2024"},
		Bindings: map[string]string{
			"SPRING2024": "Chess",
		},
	}

	docPath := filepath.Join(dataDir, "codes.json")
	store := repository.NewFileStore(docPath, zerolog.Nop())
	if err := store.Save(context.Background(), doc); err != nil {
		log.Fatalf("Failed to write %s: %v", docPath, err)
	}
	fmt.Printf("Created %s with %d codes and %d bindings\n", docPath, len(doc.Codes), len(doc.Bindings))

	lists := map[string][]string{
		"batch1.txt.gz": {"ALLTHREE1", "VALIDONE1", "welcome-1", "SPRING2024"},
		"batch2.txt":    {"ONLYTWO222", "validtwo 12", "", "AUTUMN2024"},
	}

	for filename, codes := range lists {
		path := filepath.Join(listDir, filename)
		if err := writeCodeList(path, codes); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}
		fmt.Printf("Created %s with %d lines\n", path, len(codes))
	}

	fmt.Println("\nProvision them with:")
	fmt.Printf("  STORE_FILE_PATH=%s go run ./cmd/provision %s %s\n",
		docPath, filepath.Join(listDir, "batch1.txt.gz"), filepath.Join(listDir, "batch2.txt"))
	fmt.Println("\nWELCOME1 is already available and SPRING2024 already bound, so both are skipped.")
}

func writeCodeList(path string, codes []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		gzipWriter := gzip.NewWriter(file)
		defer gzipWriter.Close()
		w = gzipWriter
	}

	for _, code := range codes {
		if _, err := fmt.Fprintf(w, "%s\n", code); err != nil {
			return fmt.Errorf("failed to write code: %w", err)
		}
	}

	return nil
}

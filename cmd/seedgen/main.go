package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type seedProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// seedgen writes a sample gzipped JSON-lines catalogue for SEED_FILE.
func main() {
	out := flag.String("out", "data/seed/products.jsonl.gz", "output file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []seedProduct{
		{Name: "Ballpoint Pen", Description: "Blue ink, medium point", Price: 1.5, Category: "stationery"},
		{Name: "A5 Notebook", Description: "80 pages, dotted", Price: 4.25, Category: "stationery"},
		{Name: "Desk Lamp", Description: "LED, adjustable arm", Price: 29.99, ImageURL: "https://example.com/img/lamp.png", Category: "home"},
		{Name: "Coffee Mug", Price: 7},
		{Name: "USB-C Cable", Description: "1m, braided", Price: 9.5, Category: "electronics"},
		{Name: "Wireless Mouse", Price: 18.75, Category: "electronics"},
	}

	if err := writeSeedFile(*out, products); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(products))
	fmt.Println("\nImport it on an empty catalogue with:")
	fmt.Printf("  SEED_FILE=%s go run ./cmd/api\n", *out)
}

func writeSeedFile(filePath string, products []seedProduct) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	gzipWriter := gzip.NewWriter(file)
	encoder := json.NewEncoder(gzipWriter)

	for _, p := range products {
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("failed to write product: %w", err)
		}
	}

	return gzipWriter.Close()
}

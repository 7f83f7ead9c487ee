// Command generate_seed_file writes a gzipped JSON product catalogue that the
// demo profile can load through SEED_FILE or from S3.
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"products-api/internal/model"
)

func main() {
	out := flag.String("out", "data/seeds/products.json.gz", "output file")
	flag.Parse()

	products := []model.Product{
		{Title: "Apple iPhone XS Max", Description: "New iPhone XS Max", Price: 1099.99},
		{Title: "Apple MacBook Pro", Description: "New MacBook", Price: 2599.99},
		{Title: "Samsung Galaxy S10+", Description: "New Galaxy!!", Price: 799.99},
		{Title: "Google Pixel 3", Description: "New Pixel", Price: 799.00},
		{Title: "Apple iPad Pro", Description: "New iPad", Price: 999.00},
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := createSeedFile(*out, products); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(products))
	fmt.Println("\nUpload to S3 with:")
	fmt.Printf("  aws s3 cp %s s3://$S3_BUCKET/seeds/%s\n", *out, filepath.Base(*out))
}

func createSeedFile(filePath string, products []model.Product) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(products); err != nil {
		return fmt.Errorf("failed to write products: %w", err)
	}

	return nil
}

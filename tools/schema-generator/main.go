package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/hooktools/hookman/manifest"
)

func main() {
	schemaBytes, err := manifest.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	// The schema is embedded by the schema package; regenerate after any
	// change to the manifest model.
	outputPath := filepath.Join("schema", "precommit.embedded.schema.json")
	if err := os.WriteFile(outputPath, schemaBytes, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", outputPath)
}

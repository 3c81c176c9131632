// Package schemas embeds the JSON Schemas for the documents the CLI writes.
package schemas

import "embed"

// File names of the embedded schemas.
const (
	GenerationResult = "generation_result.schema.json"
	DomainCheck      = "domain_check.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw schema document for name.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{GenerationResult, DomainCheck}
}

// Command schemagen regenerates the JSON schema the funding poller validates
// transaction payloads against. Run it after changing funding.Event.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"monkey-rumble/server/funding"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "schemas/funding_event.schema.json", "path to write the JSON schema")
	flag.Parse()

	schema, err := buildSchema()
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		os.Exit(1)
	}

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.ReflectFromType(reflect.TypeOf(funding.Page{}))
	if schema == nil {
		return nil, fmt.Errorf("failed to reflect funding page schema")
	}
	schema.Title = "Funding Transaction Page"
	schema.Description = "Validates the transaction API payload consumed by the funding poller."
	return schema, nil
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

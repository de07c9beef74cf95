package credspec

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("credspec/schema.json", schemaJSON)
	})
	return compiledSchema, schemaErr
}

// ValidateFile checks the credentials file against the embedded JSON Schema
// and returns one human-readable problem per offending entry. A missing file
// validates clean. A file that is not valid JSON returns a single problem.
func ValidateFile(path string) []string {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return []string{fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	return ValidateDocument(data)
}

// ValidateDocument checks raw JSON against the credential mapping schema.
func ValidateDocument(data []byte) []string {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("not valid JSON: %v", err)}
	}

	sch, err := loadSchema()
	if err != nil {
		return []string{fmt.Sprintf("schema unavailable: %v", err)}
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if ok := asValidationError(err, &ve); !ok {
		return []string{err.Error()}
	}

	problems := make(map[string]struct{})
	collectLeaves(ve, problems)

	out := make([]string, 0, len(problems))
	for p := range problems {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if ok {
		*target = ve
	}
	return ok
}

// collectLeaves walks the validation error tree and keeps only the most
// specific messages, which name the offending instance location.
func collectLeaves(ve *jsonschema.ValidationError, out map[string]struct{}) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		out[fmt.Sprintf("%s: %s", loc, ve.Message)] = struct{}{}
		return
	}
	for _, cause := range ve.Causes {
		collectLeaves(cause, out)
	}
}

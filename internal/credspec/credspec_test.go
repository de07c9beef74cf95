package credspec

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCreds(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	specs, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("expected empty mapping, got %d entries", len(specs))
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeCreds(t, `{"github": `)

	_, err := Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got: %v", err)
	}
}

func TestLoad_FullEntry(t *testing.T) {
	path := writeCreds(t, `{
		"svc": {
			"envVar": "TOK",
			"secretService": "svc",
			"secretAccount": "user",
			"label": "Svc Token",
			"targetServer": "svc-mcp"
		}
	}`)

	specs, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := Spec{
		EnvVar:        "TOK",
		SecretService: "svc",
		SecretAccount: "user",
		Label:         "Svc Token",
		TargetServer:  "svc-mcp",
	}
	if got := specs["svc"]; got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoad_InvalidEntryKeptAsIncomplete(t *testing.T) {
	path := writeCreds(t, `{
		"good": {"envVar": "A", "secretService": "s", "secretAccount": "a"},
		"bad": "not an object"
	}`)

	specs, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !specs["good"].Complete() {
		t.Error("expected good entry to be complete")
	}
	bad, ok := specs["bad"]
	if !ok {
		t.Fatal("expected bad entry to be kept")
	}
	if bad.Complete() {
		t.Error("expected bad entry to be incomplete")
	}
}

func TestSpec_Defaults(t *testing.T) {
	spec := Spec{EnvVar: "TOK", SecretService: "svc", SecretAccount: "user"}

	if got := spec.DisplayLabel("github"); got != "github" {
		t.Errorf("expected label to default to entry name, got %q", got)
	}
	if got := spec.Server("github"); got != "github" {
		t.Errorf("expected server to default to entry name, got %q", got)
	}

	spec.Label = "GitHub API Token"
	spec.TargetServer = "github-mcp"
	if got := spec.DisplayLabel("github"); got != "GitHub API Token" {
		t.Errorf("expected explicit label, got %q", got)
	}
	if got := spec.Server("github"); got != "github-mcp" {
		t.Errorf("expected explicit server, got %q", got)
	}
}

func TestSpec_Complete(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"all required", Spec{EnvVar: "A", SecretService: "s", SecretAccount: "a"}, true},
		{"missing envVar", Spec{SecretService: "s", SecretAccount: "a"}, false},
		{"missing service", Spec{EnvVar: "A", SecretAccount: "a"}, false},
		{"missing account", Spec{EnvVar: "A", SecretService: "s"}, false},
		{"zero value", Spec{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpecs_SortedNames(t *testing.T) {
	specs := Specs{"zeta": {}, "alpha": {}, "mid": {}}

	got := specs.SortedNames()
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedNames() = %v, want %v", got, want)
	}
}

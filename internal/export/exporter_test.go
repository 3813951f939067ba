package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/tree"
)

const sample = `{"b":{"z":[1,2.5],"y":"x\"y"},"a":null,"c":[],"d":true}`

func buildDoc(t *testing.T) *tree.Document {
	t.Helper()
	v, err := jsonv.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return tree.NewDocument(v, nil)
}

func TestSubtreeJSON(t *testing.T) {
	doc := buildDoc(t)

	data, err := Subtree(doc.Root, FormatJSON)
	if err != nil {
		t.Fatalf("Subtree failed: %v", err)
	}
	want := `{
  "a": null,
  "b": {
    "y": "x\"y",
    "z": [
      1,
      2.5
    ]
  },
  "c": [],
  "d": true
}
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}

	compact, err := MarshalJSON(doc.Root.FindByID("/b").Value, "")
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(compact) != `{"y":"x\"y","z":[1,2.5]}` {
		t.Errorf("Expected compact subtree, got %s", compact)
	}
}

func TestSubtreeYAML(t *testing.T) {
	doc := buildDoc(t)

	data, err := Subtree(doc.Root, FormatYAML)
	if err != nil {
		t.Fatalf("Subtree failed: %v", err)
	}

	text := string(data)
	if strings.Index(text, "a:") > strings.Index(text, "b:") {
		t.Errorf("Expected keys in display order, got:\n%s", text)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to parse exported YAML: %v", err)
	}
	want := map[string]interface{}{
		"a": nil,
		"b": map[string]interface{}{"y": `x"y`, "z": []interface{}{1, 2.5}},
		"c": []interface{}{},
		"d": true,
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("YAML mismatch (-want +got):\n%s", diff)
	}
}

func TestSubtreeYAMLQuotesAmbiguousStrings(t *testing.T) {
	v, err := jsonv.Parse([]byte(`{"flag":"true","n":"12"}`))
	if err != nil {
		t.Fatal(err)
	}

	data, err := MarshalYAML(v)
	if err != nil {
		t.Fatalf("MarshalYAML failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["flag"] != "true" || decoded["n"] != "12" {
		t.Errorf("Expected strings to survive, got %#v", decoded)
	}
}

func TestSubtreeCSV(t *testing.T) {
	doc := buildDoc(t)

	data, err := Subtree(doc.Root.FindByID("/b"), FormatCSV)
	if err != nil {
		t.Fatalf("Subtree failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	want := [][]string{
		{"Path", "Pointer", "Type", "Value"},
		{"$.b.y", "/b/y", "string", `x"y`},
		{"$.b.z[0]", "/b/z/0", "number", "1"},
		{"$.b.z[1]", "/b/z/1", "number", "2.5"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}

	all, err := Subtree(doc.Root, FormatCSV)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(all), "$.c,/c,array,[]") {
		t.Errorf("Expected a row for the empty array, got:\n%s", all)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "YAML", "yml", "csv"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("Expected %s to be accepted: %v", name, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("Expected xml to be rejected")
	}
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"existing directory", filepath.Join(dir, "out.json")},
		{"nested directories", filepath.Join(dir, "a", "b", "out.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ToFile([]byte("{}\n"), tt.path); err != nil {
				t.Fatalf("ToFile failed: %v", err)
			}

			info, err := os.Stat(tt.path)
			if err != nil {
				t.Fatalf("Failed to stat file: %v", err)
			}
			if info.Mode().Perm() != 0644 {
				t.Errorf("Expected file permissions 0644, got %o", info.Mode().Perm())
			}
		})
	}

	parent, err := os.Stat(filepath.Join(dir, "a", "b"))
	if err != nil {
		t.Fatalf("Failed to stat directory: %v", err)
	}
	if !parent.IsDir() {
		t.Error("Expected ToFile to create the parent directory")
	}
}

package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

func TestSeed(t *testing.T) {
	perfumes, err := Seed()
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if len(perfumes) == 0 {
		t.Fatal("expected a non-empty seed catalog")
	}
	if err := ValidateAll(perfumes); err != nil {
		t.Errorf("seed catalog is invalid: %v", err)
	}

	// Each call returns an independent copy
	perfumes[0].Name = "changed"
	again, _ := Seed()
	if again[0].Name == "changed" {
		t.Error("Seed returned shared data")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"catalog.json", FormatJSON},
		{"catalog.yaml", FormatYAML},
		{"catalog.YML", FormatYAML},
		{"catalog", FormatJSON},
	}

	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YAML) = %s, %v", f, err)
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("expected error for csv")
	}
}

func TestWriteAndLoadFile(t *testing.T) {
	seed, err := Seed()
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	dir := t.TempDir()

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(dir, "catalog."+string(format))
			f, err := os.Create(path)
			if err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
			if err := Write(f, format, seed[:3]); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			f.Close()

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}
			if !reflect.DeepEqual(loaded, seed[:3]) {
				t.Errorf("loaded catalog differs:\n got %+v\nwant %+v", loaded, seed[:3])
			}
		})
	}
}

func TestWrite_CamelCaseKeys(t *testing.T) {
	var buf bytes.Buffer
	p := perfume.Perfume{ID: "x", ScentFamily: "Floral", TopNotes: []string{"Rose"}}
	if err := Write(&buf, FormatJSON, []perfume.Perfume{p}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	for _, key := range []string{`"scentFamily"`, `"topNotes"`, `"middleNotes"`} {
		if !strings.Contains(out, key) {
			t.Errorf("expected key %s in %s", key, out)
		}
	}
	if strings.Contains(out, `"image"`) {
		t.Errorf("empty image should be omitted: %s", out)
	}
}

func TestDecode_EmptyYAML(t *testing.T) {
	perfumes, err := Decode(strings.NewReader(""), FormatYAML)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if perfumes == nil || len(perfumes) != 0 {
		t.Errorf("expected empty non-nil list, got %v", perfumes)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "malformed json",
			file:    "bad.json",
			content: `[{"id": `,
			wantErr: "failed to parse json catalog",
		},
		{
			name: "invalid record",
			file: "invalid.yaml",
			content: `
- id: a
  name: Broken
  brand: Test
  gender: Other
  concentration: EDP
  scentFamily: Floral
  longevity: 3
  sillage: 3
  intensity: 3
  price: 100
  occasion: Day
`,
			wantErr: "gender must be one of",
		},
		{
			name: "duplicate id",
			file: "dup.yaml",
			content: `
- {id: a, name: A, brand: B, gender: Male, concentration: EDT, scentFamily: Fresh, longevity: 3, sillage: 3, intensity: 3, price: 1, occasion: Day}
- {id: a, name: A2, brand: B, gender: Male, concentration: EDT, scentFamily: Fresh, longevity: 3, sillage: 3, intensity: 3, price: 1, occasion: Day}
`,
			wantErr: "duplicate id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}
			_, err := LoadFile(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAll_AllowsMissingID(t *testing.T) {
	seed, _ := Seed()
	p := seed[0]
	p.ID = ""
	if err := ValidateAll([]perfume.Perfume{p}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

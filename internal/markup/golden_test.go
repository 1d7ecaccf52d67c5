package markup

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// TestTranslateGolden compares whole request batches against archived
// expectations. Each testdata archive holds name.md/name.json pairs: the
// .md data minus its trailing newline is the translator input, and the
// .json data is the expected request list.
func TestTranslateGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no testdata archives")
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i+2 <= len(a.Files); i += 2 {
				md := a.Files[i]
				expected := a.Files[i+1]
				name := strings.TrimSuffix(md.Name, ".md")
				if name != strings.TrimSuffix(expected.Name, ".json") {
					t.Fatalf("mismatched file pair: %s and %s", md.Name, expected.Name)
				}

				t.Run(name, func(t *testing.T) {
					input := strings.TrimSuffix(string(md.Data), "\n")
					b := Translate(input)

					got, err := json.Marshal(b.Requests)
					if err != nil {
						t.Fatal(err)
					}

					// Compare structurally so formatting differences
					// between the archive and the encoder do not matter.
					var gotVal, wantVal []any
					if err := json.Unmarshal(got, &gotVal); err != nil {
						t.Fatal(err)
					}
					if err := json.Unmarshal(expected.Data, &wantVal); err != nil {
						t.Fatalf("invalid archive JSON for %s: %v", expected.Name, err)
					}
					if diff := cmp.Diff(wantVal, gotVal); diff != "" {
						t.Errorf("input %q: requests mismatch (-want +got):\n%s", input, diff)
					}
				})
			}
		})
	}
}

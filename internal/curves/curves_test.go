package curves

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-fda/stats/functional"
)

func TestRead(t *testing.T) {
	in := `# energy bins
name, 0, 0.5, 1
a, 1, 2, 3

b, 4, 5, 6
,7,8,9
`

	set, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if set.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", set.Len())
	}

	if set.Names[0] != "a" || set.Names[1] != "b" || set.Names[2] != "curve-2" {
		t.Errorf("Names: got %v", set.Names)
	}

	v, err := set.Functions[1].Get(0.5)
	if err != nil || v != 5 {
		t.Errorf("b(0.5): got (%v, %v), want (5, nil)", v, err)
	}

	if !set.Functions[0].SameDomain(set.Functions[2]) {
		t.Error("curves do not share the header domain")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"header only name", "name\n"},
		{"bad argument", "name,0,x\n"},
		{"descending arguments", "name,1,0\na,1,2\n"},
		{"ragged row", "name,0,1\na,1\n"},
		{"bad value", "name,0,1\na,1,oops\n"},
		{"nan value", "name,0,1\na,NaN,1\n"},
		{"inf value", "name,0,1\nb,Inf,2\n"},
		{"negative inf value", "name,0,1\nb,1,-inf\n"},
		{"inf argument", "name,0,+Inf\n"},
		{"descending header only", "name,1,0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("got %v, want ErrFormat", err)
			}
		})
	}

	_, err := Read(strings.NewReader("name,1,0\na,1,2\n"))
	if !errors.Is(err, functional.ErrInvalidInput) {
		t.Errorf("descending arguments: got %v, want wrapped ErrInvalidInput", err)
	}
}

func TestReadErrorLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"header after comments", "# detector A\n# run 7\nname,0,x\n", "line 3 "},
		{"unordered header after comment", "# detector A\nname,2,1\na,1,2\n", "line 2:"},
		{"non-finite value", "name,0,1\na,1,2\n# gap\nb,NaN,2\n", "line 4 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("got %v, want ErrFormat", err)
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not name %q", err, tt.want)
			}
		})
	}
}

func TestReadHeaderOnly(t *testing.T) {
	set, err := Read(strings.NewReader("name,0,1,2\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if set.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", set.Len())
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curves.csv")
	if err := os.WriteFile(path, []byte("name,0,1\na,1,2\nb,2,3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	set, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if set.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", set.Len())
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

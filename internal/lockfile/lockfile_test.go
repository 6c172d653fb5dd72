package lockfile

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func setupFiles(t *testing.T) (dir, project, output string) {
	t.Helper()
	dir = t.TempDir()
	project = filepath.Join(dir, "schema.json")
	output = filepath.Join(dir, "build", "schema.sql")
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, project, `{"tables":[]}`)
	writeFile(t, output, `CREATE TABLE "users" ();`)
	return dir, project, output
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWriteAndRead(t *testing.T) {
	_, project, output := setupFiles(t)
	lockPath := PathFor(output)

	if err := Write(lockPath, project, output); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lf, err := Read(lockPath)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if lf == nil {
		t.Fatal("expected lock file, got nil")
	}
	if lf.Aggregate == "" {
		t.Error("aggregate should not be empty")
	}
	var names []string
	for _, e := range lf.Entries {
		names = append(names, e.Filename)
	}
	if want := []string{"../schema.json", "schema.sql"}; !slices.Equal(names, want) {
		t.Errorf("entries = %v, want %v", names, want)
	}
	if lf.Aggregate != computeAggregate(lf.Entries) {
		t.Error("aggregate does not match entries")
	}
}

func TestWrite_Deterministic(t *testing.T) {
	_, project, output := setupFiles(t)
	lockPath := PathFor(output)

	if err := Write(lockPath, output, project); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(lockPath)
	if err := Write(lockPath, project, output); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(lockPath)
	if string(first) != string(second) {
		t.Errorf("lock depends on argument order:\n%s\n%s", first, second)
	}
}

func TestRead_NotFound(t *testing.T) {
	lf, err := Read(filepath.Join(t.TempDir(), "nonexistent.lock"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if lf != nil {
		t.Fatalf("expected nil lock file, got %+v", lf)
	}
}

func TestRead_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "\n")
	if _, err := Read(path); err == nil {
		t.Fatal("expected error for empty lock file")
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(t *testing.T, project, output string)
		valid    bool
		modified []string
		removed  []string
	}{
		{
			name:   "unchanged",
			mutate: func(t *testing.T, project, output string) {},
			valid:  true,
		},
		{
			name: "project edited",
			mutate: func(t *testing.T, project, output string) {
				writeFile(t, project, `{"tables":[{"id":"t1"}]}`)
			},
			modified: []string{"../schema.json"},
		},
		{
			name: "output edited by hand",
			mutate: func(t *testing.T, project, output string) {
				writeFile(t, output, "-- edited\n")
			},
			modified: []string{"schema.sql"},
		},
		{
			name: "output deleted",
			mutate: func(t *testing.T, project, output string) {
				if err := os.Remove(output); err != nil {
					t.Fatal(err)
				}
			},
			removed: []string{"schema.sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, project, output := setupFiles(t)
			lockPath := PathFor(output)
			if err := Write(lockPath, project, output); err != nil {
				t.Fatal(err)
			}
			tt.mutate(t, project, output)

			res, err := Verify(lockPath)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if res.Valid() != tt.valid {
				t.Errorf("Valid() = %v, want %v", res.Valid(), tt.valid)
			}
			if !slices.Equal(res.ModifiedFiles, tt.modified) {
				t.Errorf("ModifiedFiles = %v, want %v", res.ModifiedFiles, tt.modified)
			}
			if !slices.Equal(res.RemovedFiles, tt.removed) {
				t.Errorf("RemovedFiles = %v, want %v", res.RemovedFiles, tt.removed)
			}
		})
	}
}

func TestVerify_NoLock(t *testing.T) {
	res, err := Verify(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatal(err)
	}
	if res.LockFileExists || res.Valid() {
		t.Errorf("missing lock should be reported, got %+v", res)
	}
}

func TestPathFor(t *testing.T) {
	got := PathFor(filepath.Join("build", "schema.sql"))
	if !strings.HasSuffix(got, filepath.Join("build", FileName)) {
		t.Errorf("PathFor = %q", got)
	}
}

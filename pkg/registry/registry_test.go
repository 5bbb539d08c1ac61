package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanRelations(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"frame", "ms1_signal", "peak", "bad-name", "1starts_with_digit"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
	}
	// Stray files at the root are not datasets.
	if err := os.WriteFile(filepath.Join(root, "README.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	names, err := ScanRelations(root)
	if err != nil {
		t.Fatalf("ScanRelations failed: %v", err)
	}

	want := []string{"frame", "ms1_signal", "peak"}
	if len(names) != len(want) {
		t.Fatalf("ScanRelations = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ScanRelations = %v, want %v", names, want)
		}
	}
}

func TestScanRelationsMissingRoot(t *testing.T) {
	if _, err := ScanRelations(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("missing data root should fail")
	}
}

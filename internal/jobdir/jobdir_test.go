package jobdir

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("set_pot 5.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan_NumericOrdering(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"q10_input.txt", "q2_input.txt", "q1_input.txt"} {
		touch(t, dir, name)
	}

	specs, err := Scan(dir, newTestLogger())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	want := []int{1, 2, 10}
	if len(specs) != len(want) {
		t.Fatalf("got %d specs, want %d", len(specs), len(want))
	}
	for i, id := range want {
		if specs[i].ID != id {
			t.Errorf("specs[%d].ID = %d, want %d", i, specs[i].ID, id)
		}
	}
}

func TestScan_DerivesResultPath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "q7_input.txt")

	specs, err := Scan(dir, newTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	if specs[0].InputPath != filepath.Join(dir, "q7_input.txt") {
		t.Errorf("InputPath = %q", specs[0].InputPath)
	}
	if specs[0].ResultPath != filepath.Join(dir, "q7_result.json") {
		t.Errorf("ResultPath = %q", specs[0].ResultPath)
	}
}

func TestScan_SkipsNonMatching(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "q3_input.txt")
	touch(t, dir, "q3_result.json")
	touch(t, dir, "notes.txt")
	touch(t, dir, "qx_input.txt")
	touch(t, dir, "q0_input.txt") // ids are positive
	touch(t, dir, "solver_run.log")
	if err := os.Mkdir(filepath.Join(dir, "q4_input.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	specs, err := Scan(dir, newTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 1 || specs[0].ID != 3 {
		t.Fatalf("specs = %+v, want only id 3", specs)
	}
}

func TestScan_SkipsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "q7_input.txt")
	touch(t, dir, "q007_input.txt") // same id after parsing

	specs, err := Scan(dir, newTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1 (duplicate id skipped)", len(specs))
	}
	if specs[0].ID != 7 {
		t.Errorf("ID = %d, want 7", specs[0].ID)
	}
}

func TestScan_MissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "absent"), newTestLogger()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestSpecs_ExplicitIDs(t *testing.T) {
	specs := Specs("/jobs", []int{18, 25, 42})
	if len(specs) != 3 {
		t.Fatalf("got %d specs, want 3", len(specs))
	}
	if specs[1].ID != 25 {
		t.Errorf("specs[1].ID = %d, want 25", specs[1].ID)
	}
	if specs[2].InputPath != filepath.Join("/jobs", "q42_input.txt") {
		t.Errorf("InputPath = %q", specs[2].InputPath)
	}
	if specs[0].ResultPath != filepath.Join("/jobs", "q18_result.json") {
		t.Errorf("ResultPath = %q", specs[0].ResultPath)
	}
}

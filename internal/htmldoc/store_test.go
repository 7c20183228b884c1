package htmldoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// testSchema declares the entities used across the engine tests.
func testSchema() types.Schema {
	return types.NewSchema(
		&types.Entity{
			Name: "Person",
			Attributes: []types.Attribute{
				{Name: "name", Type: types.TypeString},
				{Name: "age", Type: types.TypeInt32},
			},
			Relationships: []types.Relationship{
				{Name: "friends", Target: "Person", ToMany: true},
				{Name: "employer", Target: "Company"},
			},
		},
		&types.Entity{
			Name: "Company",
			Attributes: []types.Attribute{
				{Name: "name", Type: types.TypeString},
			},
		},
		&types.Entity{
			Name: "Doc",
			Attributes: []types.Attribute{
				{Name: "title", Type: types.TypeString},
				{Name: "payload", Type: types.TypeBinary},
				{Name: "created", Type: types.TypeDate},
				{Name: "score", Type: types.TypeDecimal},
				{Name: "ratio", Type: types.TypeDouble},
				{Name: "flag", Type: types.TypeBoolean},
				{Name: "small", Type: types.TypeInt16},
				{Name: "big", Type: types.TypeInt64},
			},
		},
	)
}

// attachStore creates a store over dir/store.html, seeding the file with
// content when non-empty, and attaches it.
func attachStore(t *testing.T, dir, content string) *Store {
	t.Helper()
	path := filepath.Join(dir, "store.html")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("seeding store file: %v", err)
		}
	}
	s := NewStore(testSchema(), nil)
	if err := s.Attach(types.Config{Path: path}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	return s
}

func TestStore_AttachNonexistentStartsEmpty(t *testing.T) {
	s := attachStore(t, t.TempDir(), "")
	defer s.Detach()

	records, md, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
	if len(md) != 0 {
		t.Errorf("expected empty metadata, got %v", md)
	}
}

func TestStore_DoubleAttach(t *testing.T) {
	s := attachStore(t, t.TempDir(), "")
	defer s.Detach()

	if err := s.Attach(s.config); err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestStore_DetachedOperationsFail(t *testing.T) {
	s := attachStore(t, t.TempDir(), "")
	if err := s.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	// Idempotent.
	if err := s.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	if _, _, err := s.Load(); err != types.ErrDetached {
		t.Errorf("Load: expected ErrDetached, got %v", err)
	}
	if err := s.Save(types.NewRecord("Person")); err != types.ErrDetached {
		t.Errorf("Save: expected ErrDetached, got %v", err)
	}
	if err := s.Delete("Person_1"); err != types.ErrDetached {
		t.Errorf("Delete: expected ErrDetached, got %v", err)
	}
	if err := s.Commit(); err != types.ErrDetached {
		t.Errorf("Commit: expected ErrDetached, got %v", err)
	}
}

func TestStore_AttachUnparseable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.html")
	if err := os.WriteFile(path, []byte("<html><body>"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(testSchema(), nil)
	if err := s.Attach(types.Config{Path: path}); err == nil {
		t.Error("attaching a truncated document should fail")
	}
}

func TestStore_CommitReplacesFile(t *testing.T) {
	dir := t.TempDir()
	s := attachStore(t, dir, "")
	defer s.Detach()

	rec := types.NewRecord("Person")
	rec.SetAttr("name", "Ann")
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "store.html"))
	if err != nil {
		t.Fatalf("reading committed file: %v", err)
	}
	if !strings.Contains(string(data), `class="Person"`) {
		t.Error("committed document should contain the Person table")
	}
	if !strings.Contains(string(data), "Ann") {
		t.Error("committed document should contain the saved cell")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestStore_Metadata(t *testing.T) {
	s := attachStore(t, t.TempDir(), "")
	defer s.Detach()

	if err := s.SetMetadata("generator", "larder"); err != nil {
		t.Fatalf("SetMetadata failed: %v", err)
	}
	if err := s.SetMetadata("revision", 7); err != nil {
		t.Fatalf("SetMetadata failed: %v", err)
	}

	md, err := s.Metadata()
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if md["generator"] != "larder" {
		t.Errorf("generator = %v, want larder", md["generator"])
	}

	// Overwrite and remove.
	if err := s.SetMetadata("generator", "larder2"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMetadata("revision", nil); err != nil {
		t.Fatal(err)
	}
	md, _ = s.Metadata()
	if md["generator"] != "larder2" {
		t.Errorf("generator = %v, want larder2", md["generator"])
	}
	if _, ok := md["revision"]; ok {
		t.Error("revision should have been removed")
	}
}

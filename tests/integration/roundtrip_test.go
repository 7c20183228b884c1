// Integration tests for the full save/commit/reload cycle: the Person
// scenario, typed value round-trips, identity convergence across links,
// and row deletion.
package integration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/larder/internal/htmldoc"
	"github.com/mesh-intelligence/larder/pkg/types"
)

func personSchema() types.Schema {
	return types.NewSchema(&types.Entity{
		Name: "Person",
		Attributes: []types.Attribute{
			{Name: "name", Type: types.TypeString},
			{Name: "age", Type: types.TypeInt32},
		},
		Relationships: []types.Relationship{
			{Name: "friends", Target: "Person", ToMany: true},
		},
	})
}

func attachPersonStore(t *testing.T, path string) *htmldoc.Store {
	t.Helper()
	s := htmldoc.NewStore(personSchema(), nil)
	require.NoError(t, s.Attach(types.Config{Path: path}))
	return s
}

func findRecord(records []*types.Record, id string) *types.Record {
	for _, rec := range records {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

func TestPersonScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.html")
	s := attachPersonStore(t, path)
	defer s.Detach()

	ann := types.NewRecord("Person")
	ann.SetAttr("name", "Ann")
	ann.SetAttr("age", int32(30))
	ann.SetToMany("friends")
	require.NoError(t, s.Save(ann))
	assert.Equal(t, "Person_1", ann.ID)

	cells, err := s.RowCells("Person_1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", cells["name"])
	assert.Equal(t, "30", cells["age"])
	assert.Empty(t, cells["friends"])

	bo := types.NewRecord("Person")
	bo.SetAttr("name", "Bo")
	bo.SetAttr("age", int32(25))
	bo.SetToMany("friends", ann)
	require.NoError(t, s.Save(bo))
	assert.Equal(t, "Person_2", bo.ID)

	cells, err = s.RowCells("Person_2")
	require.NoError(t, err)
	assert.Equal(t, "Person_1", cells["friends"])

	require.NoError(t, s.Commit())
	require.NoError(t, s.Detach())

	// Reload in a fresh session.
	s2 := attachPersonStore(t, path)
	defer s2.Detach()
	records, _, err := s2.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)

	ann2 := findRecord(records, "Person_1")
	bo2 := findRecord(records, "Person_2")
	require.NotNil(t, ann2)
	require.NotNil(t, bo2)
	assert.Equal(t, "Ann", ann2.Attr("name"))
	assert.Equal(t, int32(30), ann2.Attr("age"))

	friends := bo2.ToMany("friends")
	require.Len(t, friends, 1)
	assert.Same(t, ann2, friends[0],
		"the friends link must resolve to the identity-mapped Person_1 instance")
}

func TestTypedValueRoundTrip(t *testing.T) {
	schema := types.NewSchema(&types.Entity{
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
	})
	path := filepath.Join(t.TempDir(), "docs.html")

	s := htmldoc.NewStore(schema, nil)
	require.NoError(t, s.Attach(types.Config{Path: path}))

	created := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	rec := types.NewRecord("Doc")
	rec.SetAttr("title", "quarterly report")
	rec.SetAttr("payload", []byte{1, 2, 3, 250})
	rec.SetAttr("created", created)
	rec.SetAttr("score", decimal.RequireFromString("99.95"))
	rec.SetAttr("ratio", 0.625)
	rec.SetAttr("flag", true)
	rec.SetAttr("small", int16(-7))
	rec.SetAttr("big", int64(1<<40))
	require.NoError(t, s.Save(rec))
	require.NoError(t, s.Commit())
	require.NoError(t, s.Detach())

	s2 := htmldoc.NewStore(schema, nil)
	require.NoError(t, s2.Attach(types.Config{Path: path}))
	defer s2.Detach()
	records, _, err := s2.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "quarterly report", got.Attr("title"))
	assert.Equal(t, []byte{1, 2, 3, 250}, got.Attr("payload"))
	assert.True(t, created.Equal(got.Attr("created").(time.Time)))
	assert.True(t, got.Attr("score").(decimal.Decimal).Equal(decimal.RequireFromString("99.95")))
	assert.InDelta(t, 0.625, got.Attr("ratio").(float64), 1e-12)
	assert.Equal(t, true, got.Attr("flag"))
	assert.Equal(t, int16(-7), got.Attr("small"))
	assert.Equal(t, int64(1<<40), got.Attr("big"))
}

func TestMetadataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.html")
	s := attachPersonStore(t, path)
	require.NoError(t, s.SetMetadata("generator", "larder"))
	require.NoError(t, s.SetMetadata("owner", "ops team"))
	require.NoError(t, s.Commit())
	require.NoError(t, s.Detach())

	s2 := attachPersonStore(t, path)
	defer s2.Detach()
	md, err := s2.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "larder", md["generator"])
	assert.Equal(t, "ops team", md["owner"])
}

func TestDeletionSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.html")
	s := attachPersonStore(t, path)

	var ids []string
	for _, name := range []string{"Ann", "Bo", "Cy"} {
		rec := types.NewRecord("Person")
		rec.SetAttr("name", name)
		require.NoError(t, s.Save(rec))
		ids = append(ids, rec.ID)
	}
	require.NoError(t, s.Delete(ids[1]))
	require.NoError(t, s.Commit())
	require.NoError(t, s.Detach())

	s2 := attachPersonStore(t, path)
	defer s2.Detach()
	records, _, err := s2.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Nil(t, findRecord(records, ids[1]))
	assert.Equal(t, "Ann", findRecord(records, ids[0]).Attr("name"))
	assert.Equal(t, "Cy", findRecord(records, ids[2]).Attr("name"))
}

func TestIdentifierUniquenessAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.html")
	s := attachPersonStore(t, path)

	first := types.NewRecord("Person")
	require.NoError(t, s.Save(first))
	require.NoError(t, s.Commit())
	require.NoError(t, s.Detach())

	// The persisted counter keeps the next session from reusing ids.
	s2 := attachPersonStore(t, path)
	defer s2.Detach()
	second := types.NewRecord("Person")
	require.NoError(t, s2.Save(second))
	assert.NotEqual(t, first.ID, second.ID)
}

package project

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlop3z/tabula/internal/alerr"
	"github.com/hlop3z/tabula/internal/schema"
)

func sample() schema.Project {
	return schema.Project{
		Tables: []schema.Table{
			{ID: "t_users", Name: "users", X: 10, Y: 20, Columns: []schema.Column{
				{ID: "id", Name: "id", Type: schema.TypeUUID, IsPrimary: true},
				{ID: "c_status", Name: "status", Type: schema.TypeEnum, EnumValues: []string{"on", "off"}, IsNullable: true},
			}},
			{ID: "t_posts", Name: "posts", Columns: []schema.Column{
				{ID: "id", Name: "id", Type: schema.TypeUUID, IsPrimary: true},
				{ID: "fk", Name: "users_id", Type: schema.TypeUUID, IsNullable: true, IsForeign: true,
					References: &schema.ColumnRef{TableID: "t_users", ColumnID: "id"}},
			}},
		},
		Relations: []schema.Relation{{
			ID:          "r1",
			From:        schema.ColumnRef{TableID: "t_users", ColumnID: "id"},
			To:          schema.ColumnRef{TableID: "t_posts", ColumnID: "fk"},
			Cardinality: schema.OneToMany,
			DeleteRule:  schema.DeleteCascade,
			UpdateRule:  schema.UpdateCascade,
		}},
		Viewport: schema.Viewport{X: -5, Y: 7, Scale: 1.5},
	}
}

// -----------------------------------------------------------------------------
// Parse
// -----------------------------------------------------------------------------

func TestParse_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"empty object", "{}"},
		{"null arrays", `{"tables": null, "relations": null}`},
		{"zero scale", `{"viewport": {"x": 3, "y": 4, "scale": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, Empty(), p)
			assert.NotNil(t, p.Tables)
			assert.NotNil(t, p.Relations)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	input := `{
		"relations": [{"id": "r1", "from": {"tableId": "a", "columnId": "id"}, "to": {"tableId": "b", "columnId": "a_id"}}],
		"tables": [
			{"id": "b", "name": "b"},
			{"id": "a", "name": "a", "columns": [
				{"id": "id", "name": "id", "type": "uuid", "isPrimary": true},
				{"id": "c", "name": "note", "references": {"tableId": "a", "columnId": "id"}}
			]}
		]
	}`

	p, err := Parse([]byte(input))
	require.NoError(t, err)

	require.Len(t, p.Tables, 2)
	assert.Equal(t, "b", p.Tables[0].ID, "order preserved")
	assert.NotNil(t, p.Tables[0].Columns)

	id := p.Tables[1].Columns[0]
	assert.False(t, id.IsNullable, "primary keys are never nullable")

	note := p.Tables[1].Columns[1]
	assert.Equal(t, schema.TypeText, note.Type)
	assert.True(t, note.IsNullable)
	assert.Nil(t, note.References, "reference without isForeign dropped")

	r := p.Relations[0]
	assert.Equal(t, schema.OneToMany, r.Cardinality)
	assert.Equal(t, schema.DeleteRestrict, r.DeleteRule)
	assert.Equal(t, schema.UpdateCascade, r.UpdateRule)
	assert.Equal(t, schema.DefaultViewport, p.Viewport)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"tables": [`))
	require.Error(t, err)
	assert.True(t, alerr.Is(err, alerr.ErrInvalidProject))
}

// -----------------------------------------------------------------------------
// Round trip
// -----------------------------------------------------------------------------

func TestSaveLoad(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sample()))

	assert.Contains(t, buf.String(), `"tableId": "t_users"`)
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	got, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestSaveFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, SaveFile(path, sample()))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file left behind")
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, alerr.Is(err, alerr.ErrIO))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.True(t, alerr.Is(err, alerr.ErrInvalidProject))
	assert.Contains(t, err.Error(), bad)
}

func TestMarshal_NilSlices(t *testing.T) {
	data, err := Marshal(schema.Project{Viewport: schema.DefaultViewport})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tables": []`)
	assert.Contains(t, string(data), `"relations": []`)
}

func TestMarshalYAML(t *testing.T) {
	data, err := MarshalYAML(sample())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "name: users")
	assert.Contains(t, out, "table_id: t_users")
	assert.Contains(t, out, "cardinality: one-to-many")
	assert.Contains(t, out, "scale: 1.5")
}

// -----------------------------------------------------------------------------
// Merge
// -----------------------------------------------------------------------------

func TestMerge(t *testing.T) {
	current := sample()
	incoming := schema.Project{
		Tables: []schema.Table{
			{ID: "t_users", Name: "other users"},
			{ID: "t_tags", Name: "tags"},
		},
		Relations: []schema.Relation{
			{ID: "r1", Cardinality: schema.ManyToMany},
			{ID: "r2", Cardinality: schema.ManyToMany},
		},
		Viewport: schema.Viewport{Scale: 3},
	}

	got := Merge(current, incoming)

	require.Len(t, got.Tables, 3)
	assert.Equal(t, "users", got.Tables[0].Name, "existing id wins")
	assert.Equal(t, "tags", got.Tables[2].Name)
	require.Len(t, got.Relations, 2)
	assert.Equal(t, schema.OneToMany, got.Relations[0].Cardinality)
	assert.Equal(t, "r2", got.Relations[1].ID)
	assert.Equal(t, current.Viewport, got.Viewport)

	got.Tables[0].Columns[1].EnumValues[0] = "changed"
	assert.Equal(t, "on", current.Tables[0].Columns[1].EnumValues[0], "merge copies")
}

func TestMerge_DedupesWithinIncoming(t *testing.T) {
	incoming := schema.Project{Tables: []schema.Table{{ID: "a"}, {ID: "a"}}}
	got := Merge(Empty(), incoming)
	assert.Len(t, got.Tables, 1)
	assert.NotNil(t, got.Relations)
}

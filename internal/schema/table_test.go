package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func sampleTable() Table {
	return Table{
		ID:   "t1",
		Name: "users",
		Columns: []Column{
			{ID: "c1", Name: "id", Type: TypeUUID, IsPrimary: true},
			{ID: "c2", Name: "status", Type: TypeEnum, EnumValues: []string{"a", "b"}, IsNullable: true},
			{ID: "c3", Name: "org_id", Type: TypeUUID, IsForeign: true, References: &ColumnRef{TableID: "t2", ColumnID: "c9"}},
		},
	}
}

func TestTable_CloneIsIndependent(t *testing.T) {
	orig := sampleTable()
	clone := orig.Clone()

	if !reflect.DeepEqual(orig, clone) {
		t.Fatal("Clone() differs from original")
	}

	clone.Columns[0].Name = "changed"
	clone.Columns[1].EnumValues[0] = "z"
	clone.Columns[2].References.TableID = "other"

	if orig.Columns[0].Name != "id" {
		t.Error("column slice shared with clone")
	}
	if orig.Columns[1].EnumValues[0] != "a" {
		t.Error("enum values shared with clone")
	}
	if orig.Columns[2].References.TableID != "t2" {
		t.Error("references pointer shared with clone")
	}
}

func TestTable_Lookups(t *testing.T) {
	tbl := sampleTable()

	if c := tbl.Column("c2"); c == nil || c.Name != "status" {
		t.Errorf("Column(c2) = %v", c)
	}
	if tbl.Column("missing") != nil {
		t.Error("Column(missing) should be nil")
	}
	if got := tbl.ColumnIndex("c3"); got != 2 {
		t.Errorf("ColumnIndex(c3) = %d, want 2", got)
	}
	if c := tbl.ColumnByName("org_id"); c == nil || c.ID != "c3" {
		t.Errorf("ColumnByName(org_id) = %v", c)
	}
	if pk := tbl.PrimaryKey(); pk == nil || pk.ID != "c1" {
		t.Errorf("PrimaryKey() = %v", pk)
	}
	if got := len(tbl.PrimaryKeys()); got != 1 {
		t.Errorf("len(PrimaryKeys()) = %d, want 1", got)
	}
}

func TestColumn_ReferencesTo(t *testing.T) {
	tbl := sampleTable()
	ref := ColumnRef{TableID: "t2", ColumnID: "c9"}

	if !tbl.Columns[2].ReferencesTo(ref) {
		t.Error("ReferencesTo() = false for matching FK")
	}
	if tbl.Columns[0].ReferencesTo(ref) {
		t.Error("ReferencesTo() = true for plain column")
	}
}

func TestColumn_UnmarshalDefaultsNullable(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{"absent", `{"id":"c1","name":"x","type":"text"}`, true},
		{"explicit false", `{"id":"c1","name":"x","type":"text","isNullable":false}`, false},
		{"explicit true", `{"id":"c1","name":"x","type":"text","isNullable":true}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Column
			if err := json.Unmarshal([]byte(tt.json), &c); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if c.IsNullable != tt.want {
				t.Errorf("IsNullable = %v, want %v", c.IsNullable, tt.want)
			}
		})
	}
}

func TestRelation_Endpoints(t *testing.T) {
	a := ColumnRef{TableID: "t1", ColumnID: "c1"}
	b := ColumnRef{TableID: "t2", ColumnID: "c2"}
	r := Relation{From: a, To: b}

	if !r.Connects(a, b) || !r.Connects(b, a) {
		t.Error("Connects() should match both orientations")
	}
	if !r.Touches("t2") || r.Touches("t3") {
		t.Error("Touches() mismatch")
	}
	if !r.HasEndpoint(a) || r.HasEndpoint(ColumnRef{TableID: "t1", ColumnID: "x"}) {
		t.Error("HasEndpoint() mismatch")
	}
}

func TestParsers(t *testing.T) {
	cardinalities := map[string]Cardinality{
		"one-to-one": OneToOne, "1:1": OneToOne,
		"one-to-many": OneToMany, "1:N": OneToMany,
		"many-to-many": ManyToMany, "n:m": ManyToMany,
	}
	for in, want := range cardinalities {
		got, err := ParseCardinality(in)
		if err != nil || got != want {
			t.Errorf("ParseCardinality(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseCardinality("lots"); err == nil {
		t.Error("ParseCardinality(lots) should fail")
	}

	if r, err := ParseDeleteRule("SET NULL"); err != nil || r != DeleteSetNull {
		t.Errorf("ParseDeleteRule(SET NULL) = %q, %v", r, err)
	}
	if _, err := ParseDeleteRule("nothing"); err == nil {
		t.Error("ParseDeleteRule(nothing) should fail")
	}
	if r, err := ParseUpdateRule("Cascade"); err != nil || r != UpdateCascade {
		t.Errorf("ParseUpdateRule(Cascade) = %q, %v", r, err)
	}
}

func TestRuleSQL(t *testing.T) {
	if DeleteSetNull.SQL() != "SET NULL" || DeleteRestrict.SQL() != "RESTRICT" || DeleteCascade.SQL() != "CASCADE" {
		t.Error("DeleteRule.SQL() mismatch")
	}
	if UpdateCascade.SQL() != "CASCADE" || UpdateRestrict.SQL() != "RESTRICT" {
		t.Error("UpdateRule.SQL() mismatch")
	}
	if DeleteRule("bogus").SQL() != "" {
		t.Error("unknown rule should map to empty")
	}
}

func TestColumnType_Known(t *testing.T) {
	if !TypeEnum.Known() || ColumnType("money").Known() {
		t.Error("Known() mismatch")
	}
	if !OneToMany.UsesForeignKey() || ManyToMany.UsesForeignKey() {
		t.Error("UsesForeignKey() mismatch")
	}
}

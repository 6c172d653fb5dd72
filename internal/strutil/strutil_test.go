package strutil

import (
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// ToSnakeCase Tests
// -----------------------------------------------------------------------------

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"user", "user"},
		{"User", "user"},
		{"userName", "user_name"},
		{"UserName", "user_name"},
		{"HTTPServer", "http_server"},
		{"userID", "user_id"},
		{"already_snake", "already_snake"},
		{"order-items", "order_items"},
		{"Order Items", "order_items"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToSnakeCase(tt.input); got != tt.want {
				t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Canonical Name Tests
// -----------------------------------------------------------------------------

func TestCanonicalNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"fk column", FKColumn("users", "id"), "users_id"},
		{"fk column non-id", FKColumn("users", "email"), "users_email"},
		{"fk column id", FKColumnID("t1", "c1"), "fk_t1_c1"},
		{"index", IndexName("posts", "user_id"), "idx_posts_user_id"},
		{"foreign key", ForeignKeyName("posts", "user_id"), "fk_posts_user_id"},
		{"primary key", PrimaryKeyName("enrollments"), "pk_enrollments"},
		{"enum type", EnumTypeName("users", "status"), "users_status_enum"},
		{"enum type camel", EnumTypeName("OrderItems", "kindOf"), "order_items_kind_of_enum"},
		{"junction sorted", JunctionName("students", "courses"), "courses_students"},
		{"junction already sorted", JunctionName("courses", "students"), "courses_students"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestIdentifier_Truncation(t *testing.T) {
	long := strings.Repeat("a", 40)
	other := strings.Repeat("a", 39) + "b"

	got := Identifier("fk", long, long)
	if len(got) != MaxIdentifierLength {
		t.Fatalf("len(Identifier()) = %d, want %d", len(got), MaxIdentifierLength)
	}
	if got != Identifier("fk", long, long) {
		t.Error("Identifier() is not deterministic")
	}
	if got == Identifier("fk", long, other) {
		t.Error("distinct long names collided after truncation")
	}

	short := Identifier("fk", "posts", "user_id")
	if short != "fk_posts_user_id" {
		t.Errorf("Identifier() = %q, want untouched short name", short)
	}
}

func TestTruncateBytes_RuneBoundary(t *testing.T) {
	s := "abé" // é is two bytes
	if got := truncateBytes(s, 3); got != "ab" {
		t.Errorf("truncateBytes() = %q, want %q", got, "ab")
	}
}

// -----------------------------------------------------------------------------
// Formatting Tests
// -----------------------------------------------------------------------------

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"active", "'active'"},
		{"it's", "'it''s'"},
		{"", "''"},
	}
	for _, tt := range tests {
		if got := QuoteLiteral(tt.input); got != tt.want {
			t.Errorf("QuoteLiteral(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" a, b ,,c ")
	want := []string{"a", "b", "c"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("SplitList() = %v, want %v", got, want)
	}
	if SplitList("") != nil {
		t.Error("SplitList(\"\") should be nil")
	}
}

func TestIndent(t *testing.T) {
	got := Indent("a\n\nb", 2)
	if got != "  a\n\n  b" {
		t.Errorf("Indent() = %q", got)
	}
}

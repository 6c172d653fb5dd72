package sqlgen

import (
	"strings"
	"testing"

	"github.com/hlop3z/tabula/internal/dialect"
)

func pg() *Builder {
	return NewBuilder(dialect.Postgres())
}

// -----------------------------------------------------------------------------
// Builder DDL Tests
// -----------------------------------------------------------------------------

func TestBuilderNew(t *testing.T) {
	b := pg()
	if b.Dialect().Name() != "postgres" {
		t.Errorf("Dialect() = %v, want postgres", b.Dialect().Name())
	}
	if b.String() != "" {
		t.Errorf("new builder should be empty, got %q", b.String())
	}
}

func TestBuilderStatements(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"create table", pg().CreateTable("users").String(), `CREATE TABLE "users"`},
		{"alter table", pg().AlterTable("users").String(), `ALTER TABLE "users"`},
		{"column", pg().Column("email", "TEXT").String(), `"email" TEXT`},
		{"create type", pg().CreateType("users_status_enum", []string{"active", "it's"}).String(),
			`CREATE TYPE "users_status_enum" AS ENUM ('active', 'it''s')`},
		{"create type empty", pg().CreateType("e", nil).String(), `CREATE TYPE "e" AS ENUM ()`},
		{"create index", pg().CreateIndex("idx_posts_user_id", "posts", "user_id").String(),
			`CREATE INDEX "idx_posts_user_id" ON "posts" ("user_id")`},
		{"quoted names", pg().CreateTable(`we"ird`).String(), `CREATE TABLE "we""ird"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Builder Column Modifier Tests
// -----------------------------------------------------------------------------

func TestBuilderModifiers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"not null", pg().NotNull().String(), " NOT NULL"},
		{"default", pg().Default("now()").String(), " DEFAULT now()"},
		{"primary key", pg().PrimaryKey().String(), " PRIMARY KEY"},
		{"unique", pg().Unique().String(), " UNIQUE"},
		{"references", pg().References("users", "id").String(), ` REFERENCES "users" ("id")`},
		{"on delete", pg().OnDelete("CASCADE").String(), " ON DELETE CASCADE"},
		{"on delete empty", pg().OnDelete("").String(), ""},
		{"on update", pg().OnUpdate("RESTRICT").String(), " ON UPDATE RESTRICT"},
		{"on update empty", pg().OnUpdate("").String(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Builder Constraint Tests
// -----------------------------------------------------------------------------

func TestBuilderConstraints(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"constraint", pg().Constraint("pk_t").String(), `CONSTRAINT "pk_t"`},
		{"foreign key", pg().ForeignKey("a", "b").String(), ` FOREIGN KEY ("a", "b")`},
		{"primary key on", pg().PrimaryKeyOn("a", "b").String(), ` PRIMARY KEY ("a", "b")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestAlterTableAddConstraint(t *testing.T) {
	got := pg().AlterTable("posts").
		AddConstraint("fk_posts_user_id").
		ForeignKey("user_id").
		References("users", "id").
		OnDelete("CASCADE").
		End().
		String()
	want := `ALTER TABLE "posts" ADD CONSTRAINT "fk_posts_user_id" FOREIGN KEY ("user_id") REFERENCES "users" ("id") ON DELETE CASCADE;`

	if got != want {
		t.Errorf("ALTER TABLE ADD CONSTRAINT\ngot:  %q\nwant: %q", got, want)
	}
}

func TestFullCreateTable(t *testing.T) {
	b := pg()
	b.CreateTable("auth_users").Raw(" (\n")
	b.Raw("  ").Column("id", "UUID").NotNull().Default("gen_random_uuid()").PrimaryKey().Raw(",\n")
	b.Raw("  ").Column("email", "TEXT").NotNull().Unique().Raw("\n")
	b.Raw(")").End()

	got := b.String()

	if !strings.HasPrefix(got, `CREATE TABLE "auth_users" (`) {
		t.Errorf("should start with CREATE TABLE, got: %s", got)
	}
	if !strings.HasSuffix(got, ");") {
		t.Errorf("should end with );, got: %s", got)
	}
	for _, part := range []string{
		`"id" UUID NOT NULL DEFAULT gen_random_uuid() PRIMARY KEY`,
		`"email" TEXT NOT NULL UNIQUE`,
	} {
		if !strings.Contains(got, part) {
			t.Errorf("missing part: %s\nin: %s", part, got)
		}
	}
}

// -----------------------------------------------------------------------------
// Builder Reuse Test
// -----------------------------------------------------------------------------

func TestBuilderReuse(t *testing.T) {
	b := pg()

	b.CreateTable("table1")
	if first := b.String(); first != `CREATE TABLE "table1"` {
		t.Errorf("first use: got %q", first)
	}

	b.Reset()
	b.CreateTable("table2")
	if second := b.String(); second != `CREATE TABLE "table2"` {
		t.Errorf("second use: got %q", second)
	}
}

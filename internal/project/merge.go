package project

import "github.com/hlop3z/tabula/internal/schema"

// Merge combines an imported project into the current one. Incoming tables
// and relations whose id already exists are dropped; the rest are appended
// in their incoming order. The current viewport is kept. The result is
// meant for a bulk replace of the editor state.
func Merge(current, incoming schema.Project) schema.Project {
	out := schema.Project{
		Tables:    schema.CloneTables(current.Tables),
		Relations: schema.CloneRelations(current.Relations),
		Viewport:  current.Viewport,
	}
	if out.Tables == nil {
		out.Tables = []schema.Table{}
	}
	if out.Relations == nil {
		out.Relations = []schema.Relation{}
	}

	tables := make(map[string]bool, len(out.Tables))
	for _, t := range out.Tables {
		tables[t.ID] = true
	}
	for _, t := range incoming.Tables {
		if tables[t.ID] {
			continue
		}
		tables[t.ID] = true
		out.Tables = append(out.Tables, t.Clone())
	}

	relations := make(map[string]bool, len(out.Relations))
	for _, r := range out.Relations {
		relations[r.ID] = true
	}
	for _, r := range incoming.Relations {
		if relations[r.ID] {
			continue
		}
		relations[r.ID] = true
		out.Relations = append(out.Relations, r.Clone())
	}
	return out
}

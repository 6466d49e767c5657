package cov

import "github.com/vd09-projects/v8toistanbul/internal/model"

// Span is a region of a script. StartLine and EndLine index the owning
// Script's lines; StartCol and EndCol are absolute offsets.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Count     int
}

func (sp Span) location(lines []Line) model.Location {
	start, end := lines[sp.StartLine], lines[sp.EndLine]
	return model.Location{
		Start: model.Position{Line: start.Number, Column: sp.StartCol - start.StartCol},
		End:   model.Position{Line: end.Number, Column: sp.EndCol - end.StartCol},
	}
}

// Branch is one arm of a block-coverage construct.
type Branch struct {
	Span
}

func (b Branch) toIstanbul(lines []Line) model.BranchMapping {
	loc := b.location(lines)
	return model.BranchMapping{
		Type:      "branch",
		Line:      lines[b.StartLine].Number,
		Loc:       loc,
		Locations: []model.Location{loc},
	}
}

// Function is a function-level coverage entry. Name is empty for anonymous
// functions.
type Function struct {
	Name string
	Span
}

func (f Function) toIstanbul(lines []Line) model.FunctionMapping {
	loc := f.location(lines)
	return model.FunctionMapping{
		Name: f.Name,
		Decl: loc,
		Loc:  loc,
		Line: lines[f.StartLine].Number,
	}
}

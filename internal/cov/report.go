package cov

import "github.com/vd09-projects/v8toistanbul/internal/model"

// FileCoverage serializes the current state. Every line is a statement;
// every branch is a single-armed branch group.
func (s *Script) FileCoverage() *model.FileCoverage {
	fc := &model.FileCoverage{
		Path:         s.path,
		StatementMap: make(model.Indexed[model.Location], len(s.lines)),
		S:            make(model.Indexed[int], len(s.lines)),
		BranchMap:    make(model.Indexed[model.BranchMapping], len(s.branches)),
		B:            make(model.Indexed[[]int], len(s.branches)),
		FnMap:        make(model.Indexed[model.FunctionMapping], len(s.functions)),
		F:            make(model.Indexed[int], len(s.functions)),
	}
	for i, line := range s.lines {
		fc.StatementMap[i] = line.toIstanbul()
		fc.S[i] = line.Count
	}
	for i, b := range s.branches {
		fc.BranchMap[i] = b.toIstanbul(s.lines)
		fc.B[i] = []int{b.Count}
	}
	for i, fn := range s.functions {
		fc.FnMap[i] = fn.toIstanbul(s.lines)
		fc.F[i] = fn.Count
	}
	return fc
}

// ToIstanbul returns the script's coverage keyed by its path.
func (s *Script) ToIstanbul() model.CoverageMap {
	return model.CoverageMap{s.path: s.FileCoverage()}
}

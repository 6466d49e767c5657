package cov

import (
	"fmt"
	"sort"

	"github.com/vd09-projects/v8toistanbul/internal/model"
	"github.com/vd09-projects/v8toistanbul/internal/utils"
)

// ApplyCoverage folds a batch of blocks into the script. Every range that
// touches at least one line yields a branch (block coverage) or a function
// record, and sets the count of each line it fully contains. Applying the
// same batch twice appends duplicate records.
//
// A negative count panics.
func (s *Script) ApplyCoverage(blocks []model.FunctionCoverage) {
	for _, block := range blocks {
		for i, r := range block.Ranges {
			if r.Count < 0 {
				panic(fmt.Sprintf("cov: negative count %d in %q range %d", r.Count, block.FunctionName, i))
			}
			startCol := utils.Max(0, r.StartOffset-s.wrapperLength)
			endCol := utils.Min(s.eof, r.EndOffset-s.wrapperLength)

			first, last := s.coveredLines(startCol, endCol)
			if first > last {
				continue
			}
			span := Span{StartLine: first, StartCol: startCol, EndLine: last, EndCol: endCol, Count: r.Count}

			switch {
			case block.IsBlockCoverage:
				s.branches = append(s.branches, Branch{Span: span})
				// one function entry per block, taken from its first range
				if block.FunctionName != "" && i == 0 {
					s.functions = append(s.functions, Function{Name: block.FunctionName, Span: span})
				}
			case block.FunctionName != "":
				s.functions = append(s.functions, Function{Name: block.FunctionName, Span: span})
			}

			// Partial overlaps leave the count alone so an untaken arm on a
			// line does not zero a line that executed.
			for j := first; j <= last; j++ {
				line := &s.lines[j]
				if startCol <= line.StartCol && endCol >= line.EndCol {
					line.Count = r.Count
				}
			}
		}
	}
}

// coveredLines returns the index range [first, last] of lines overlapping
// [startCol, endCol]. first > last when nothing overlaps.
func (s *Script) coveredLines(startCol, endCol int) (first, last int) {
	first = sort.Search(len(s.lines), func(i int) bool { return s.lines[i].EndCol >= startCol })
	last = sort.Search(len(s.lines), func(i int) bool { return s.lines[i].StartCol > endCol }) - 1
	return first, last
}

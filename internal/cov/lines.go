package cov

import (
	"strings"

	"github.com/vd09-projects/v8toistanbul/internal/model"
)

// Line is one physical line of an indexed script. StartCol and EndCol are
// offsets into the trimmed source; EndCol excludes the line terminator.
type Line struct {
	Number   int
	StartCol int
	EndCol   int
	Count    int
}

func (l Line) toIstanbul() model.Location {
	return model.Location{
		Start: model.Position{Line: l.Number, Column: 0},
		End:   model.Position{Line: l.Number, Column: l.EndCol - l.StartCol},
	}
}

// byteOrderMark is dropped by the module loader before V8 sees the source.
const byteOrderMark = "\uFEFF"

// ShebangLength returns the length of a leading "#!" line, terminator
// excluded, or 0 when source does not start with "#!". A byte order mark
// before the shebang is ignored.
func ShebangLength(source string) int {
	source = strings.TrimPrefix(source, byteOrderMark)
	if !strings.HasPrefix(source, "#!") {
		return 0
	}
	first, _, _ := strings.Cut(source, "\n")
	return len(strings.TrimSuffix(first, "\r"))
}

// buildLines indexes source into lines and returns them with the end offset
// of the last line. length measures a chunk of text in offset units.
func buildLines(source string, shebangLength int, length func(string) int) ([]Line, int) {
	var (
		chunks   = strings.SplitAfter(strings.TrimSpace(strings.TrimPrefix(source, byteOrderMark)), "\n")
		lines    = make([]Line, 0, len(chunks))
		position int
		eof      int
	)
	for i, chunk := range chunks {
		n := length(chunk)
		eof = position + n - terminatorLen(chunk)
		line := Line{Number: i + 1, StartCol: position, EndCol: eof}
		// shebang lines are never instrumented but always run
		if shebangLength > 0 && i == 0 {
			line.Count = 1
		}
		lines = append(lines, line)
		position += n
	}
	return lines, eof
}

func terminatorLen(chunk string) int {
	switch {
	case strings.HasSuffix(chunk, "\r\n"):
		return 2
	case strings.HasSuffix(chunk, "\n"):
		return 1
	}
	return 0
}

func byteLen(s string) int { return len(s) }

// utf16Len counts UTF-16 code units, the unit V8 uses for JS source offsets.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

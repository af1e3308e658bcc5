package ast

// Comment records a '#'-to-end-of-line comment: preserved for lossless
// source reconstruction (spec.md §6.4) but never tokenized.
type Comment struct {
	Bytes []byte
	Start ByteIndex
}

// WhitespaceIndex identifies a pooled run of non-space whitespace
// (anything read by the sequencer's read_space/horizontal_whitespace
// paths), kept so that SourceReconstruction can replay exact
// whitespace bytes and so the sequencer can compare indent runs
// byte-for-byte across lines (spec.md §4.1's matching_indent).
type WhitespaceIndex int

// CharData carries the per-source character-level bookkeeping that
// rides alongside the token buffer but isn't itself tokens: line
// starts (for line/column lookup), comments, and whitespace runs.
type CharData struct {
	LineStarts []ByteIndex
	Comments   []Comment
	Whitespace []string
}

func (c *CharData) AppendComment(bytes []byte, start ByteIndex) {
	cp := make([]byte, len(bytes))
	copy(cp, bytes)
	c.Comments = append(c.Comments, Comment{Bytes: cp, Start: start})
}

func (c *CharData) AppendWhitespace(s string) WhitespaceIndex {
	idx := WhitespaceIndex(len(c.Whitespace))
	c.Whitespace = append(c.Whitespace, s)
	return idx
}

func (c *CharData) WhitespaceString(idx WhitespaceIndex) string {
	return c.Whitespace[idx]
}

// LineColumn converts a byte offset to a 1-based (line, column) pair
// by binary-searching LineStarts. Column is a byte offset within the
// line, matching the teacher's CompilerError.Format contract (it reads
// the line out of the source text directly rather than re-deriving
// rune columns, since Berg's source positions are already byte-based).
func (c *CharData) LineColumn(pos ByteIndex) (line, column int) {
	lo, hi := 0, len(c.LineStarts)-1
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if c.LineStarts[mid] <= pos {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best + 1, int(pos-c.LineStarts[best]) + 1
}

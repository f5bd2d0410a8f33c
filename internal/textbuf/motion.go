package textbuf

import "github.com/studiowebux/resto/internal/vim"

// MoveCursor applies a cursor motion. Horizontal motions stay on the
// current line; vertical ones keep the preferred column.
func (b *Buffer) MoveCursor(m vim.CursorMove) {
	switch m {
	case vim.CursorBack:
		if b.cursor.Col > 0 {
			b.cursor.Col--
		}
		b.prefCol = -1
	case vim.CursorForward:
		if b.cursor.Col < b.lineLen(b.cursor.Row) {
			b.cursor.Col++
		}
		b.prefCol = -1
	case vim.CursorUp:
		b.moveVertical(-1)
	case vim.CursorDown:
		b.moveVertical(1)
	case vim.CursorHead:
		b.cursor.Col = 0
		b.prefCol = -1
	case vim.CursorEnd:
		b.cursor.Col = b.lineLen(b.cursor.Row)
		b.prefCol = -1
	case vim.CursorTop:
		b.cursor = Pos{}
		b.prefCol = -1
	case vim.CursorBottom:
		b.cursor = Pos{Row: len(b.lines) - 1}
		b.prefCol = -1
	case vim.CursorWordForward:
		b.cursor = b.wordForward(b.cursor)
		b.prefCol = -1
	case vim.CursorWordEnd:
		b.cursor = b.wordEnd(b.cursor)
		b.prefCol = -1
	case vim.CursorWordBack:
		b.cursor = b.wordBack(b.cursor)
		b.prefCol = -1
	}
}

func (b *Buffer) moveVertical(delta int) {
	row := b.cursor.Row + delta
	if row < 0 || row >= len(b.lines) {
		return
	}
	if b.prefCol < 0 {
		b.prefCol = b.cursor.Col
	}
	b.cursor.Row = row
	b.cursor.Col = min(b.prefCol, b.lineLen(row))
}

// next steps one position forward. The position past the last character of
// a line stands for its line break.
func (b *Buffer) next(p Pos) (Pos, bool) {
	if p.Col < b.lineLen(p.Row) {
		return Pos{Row: p.Row, Col: p.Col + 1}, true
	}
	if p.Row+1 < len(b.lines) {
		return Pos{Row: p.Row + 1}, true
	}
	return p, false
}

func (b *Buffer) prev(p Pos) (Pos, bool) {
	if p.Col > 0 {
		return Pos{Row: p.Row, Col: p.Col - 1}, true
	}
	if p.Row > 0 {
		return Pos{Row: p.Row - 1, Col: b.lineLen(p.Row - 1)}, true
	}
	return p, false
}

func (b *Buffer) classAt(p Pos) charClass {
	cs := clusters(b.lines[p.Row])
	if p.Col >= len(cs) {
		return classSpace
	}
	return classOf(cs[p.Col])
}

func (b *Buffer) emptyLine(p Pos) bool {
	return p.Col == 0 && b.lineLen(p.Row) == 0
}

// wordForward finds the start of the next word. Empty lines count as words.
func (b *Buffer) wordForward(p Pos) Pos {
	start := b.classAt(p)
	ok := true
	if start != classSpace {
		for ok && b.classAt(p) == start && !(p.Col >= b.lineLen(p.Row)) {
			p, ok = b.next(p)
		}
	}
	for ok && b.classAt(p) == classSpace {
		if q, moved := b.next(p); moved {
			if q.Row != p.Row && b.emptyLine(q) {
				return q
			}
			p = q
			continue
		}
		ok = false
	}
	return p
}

// wordEnd finds the last character of the current or next word.
func (b *Buffer) wordEnd(p Pos) Pos {
	q, ok := b.next(p)
	if !ok {
		return p
	}
	p = q
	for b.classAt(p) == classSpace {
		if q, ok = b.next(p); !ok {
			return p
		}
		p = q
	}
	class := b.classAt(p)
	for {
		q, ok = b.next(p)
		if !ok || q.Row != p.Row || b.classAt(q) != class {
			return p
		}
		p = q
	}
}

// wordBack finds the start of the current or previous word.
func (b *Buffer) wordBack(p Pos) Pos {
	q, ok := b.prev(p)
	if !ok {
		return p
	}
	p = q
	for b.classAt(p) == classSpace && !b.emptyLine(p) {
		if q, ok = b.prev(p); !ok {
			return p
		}
		p = q
	}
	class := b.classAt(p)
	for p.Col > 0 {
		q = Pos{Row: p.Row, Col: p.Col - 1}
		if b.classAt(q) != class {
			break
		}
		p = q
	}
	return p
}

// ScrollLines scrolls the viewport by n rows, dragging the cursor along
// when it would leave the view.
func (b *Buffer) ScrollLines(n int) {
	b.top = clampInt(b.top+n, 0, len(b.lines)-1)
	h := b.Height()
	row := clampInt(b.cursor.Row, b.top, b.top+h-1)
	b.jumpRow(row)
}

// ScrollHalfPage moves viewport and cursor by half a page in dir.
func (b *Buffer) ScrollHalfPage(dir int) {
	b.scrollBoth(dir * max(1, b.Height()/2))
}

// ScrollPage moves viewport and cursor by a page in dir.
func (b *Buffer) ScrollPage(dir int) {
	b.scrollBoth(dir * b.Height())
}

func (b *Buffer) scrollBoth(n int) {
	b.top = clampInt(b.top+n, 0, len(b.lines)-1)
	b.jumpRow(b.cursor.Row + n)
}

func (b *Buffer) jumpRow(row int) {
	row = clampInt(row, 0, len(b.lines)-1)
	if row == b.cursor.Row {
		return
	}
	if b.prefCol < 0 {
		b.prefCol = b.cursor.Col
	}
	b.cursor.Row = row
	b.cursor.Col = min(b.prefCol, b.lineLen(row))
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package lexer

// scanComment съедает комментарий, если он начинается в текущей позиции.
// Из совпавших маркеров выигрывает самый длинный; при равной длине однострочный.
// Незакрытый многострочный комментарий тянется до конца буфера.
func (lx *Lexer) scanComment() bool {
	single := longestPrefix(&lx.cursor, lx.def.CommentSingle())
	multi := -1
	for i, p := range lx.def.CommentMulti() {
		if lx.cursor.HasPrefix(p.Open) {
			multi = i
			break
		}
	}
	switch {
	case multi >= 0 && len(lx.def.CommentMulti()[multi].Open) > len(single):
		p := lx.def.CommentMulti()[multi]
		lx.cursor.Advance(len(p.Open))
		if lx.cursor.SkipTo(p.Close) {
			lx.cursor.Advance(len(p.Close))
		}
		return true
	case single != "":
		lx.cursor.Advance(len(single))
		lx.cursor.SkipTo("\n")
		return true
	}
	return false
}

// scanQuote съедает строку до закрывающей кавычки того же вида с учётом
// escape-символа; незакрытая строка тянется до конца буфера.
func (lx *Lexer) scanQuote() bool {
	q := longestPrefix(&lx.cursor, lx.def.Quotes())
	if q == "" {
		return false
	}
	lx.cursor.Advance(len(q))
	esc := lx.def.Escape()
	for !lx.cursor.EOF() {
		if esc != "" && lx.cursor.Eat(esc) {
			lx.cursor.BumpRune()
			continue
		}
		if lx.cursor.Eat(q) {
			return true
		}
		lx.cursor.BumpRune()
	}
	return true
}

// scanWord съедает максимальную последовательность символов слова.
func (lx *Lexer) scanWord() bool {
	r, sz := lx.cursor.PeekRune()
	if sz == 0 || !lx.def.IsWordRune(r) {
		return false
	}
	for {
		r, sz = lx.cursor.PeekRune()
		if sz == 0 || !lx.def.IsWordRune(r) {
			return true
		}
		lx.cursor.Advance(sz)
	}
}

// eatLongest пробует литералы по убыванию длины (жадность).
func (lx *Lexer) eatLongest(lits []string) bool {
	return lx.cursor.Eat(longestPrefix(&lx.cursor, lits))
}

// longestPrefix returns the first literal the rest of the buffer starts
// with. lits must be sorted longest first.
func longestPrefix(c *Cursor, lits []string) string {
	for _, lit := range lits {
		if c.HasPrefix(lit) {
			return lit
		}
	}
	return ""
}

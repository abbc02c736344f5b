package lexer

import (
	"iter"

	"hilite/internal/langdef"
	"hilite/internal/rules"
	"hilite/internal/token"
)

// Lexer produces the classified tokens of one buffer on demand.
// It never fails: every byte of the buffer ends up in exactly one token.
type Lexer struct {
	def    *langdef.Definition
	cursor Cursor
	opts   Options
	text   *rules.Text
	held   *token.Token // токен, прочитанный при склейке plain
}

// New creates a lexer over src for the given definition.
func New(def *langdef.Definition, src string, opts Options) *Lexer {
	return &Lexer{
		def:    def,
		cursor: NewCursor(src),
		opts:   opts,
		text:   rules.NewText(src),
	}
}

// Next returns the next token, or false once the buffer is exhausted.
func (lx *Lexer) Next() (token.Token, bool) {
	tok, ok := lx.pull()
	if !ok || !lx.opts.MergePlain || !tok.IsPlain() {
		return tok, ok
	}
	for {
		nxt, more := lx.pull()
		if !more {
			break
		}
		if !nxt.IsPlain() {
			lx.held = &nxt
			break
		}
		tok.Span.End = nxt.Span.End
	}
	tok.Text = tok.Span.Slice(lx.cursor.Src)
	return tok, true
}

func (lx *Lexer) pull() (token.Token, bool) {
	if lx.held != nil {
		tok := *lx.held
		lx.held = nil
		return tok, true
	}
	if lx.cursor.EOF() {
		return token.Token{}, false
	}
	return lx.scan(), true
}

// scan classifies the token at the cursor. Порядок шагов фиксирован:
// before-правила, комментарии, строки, слова, литералы, after-правила, руна.
func (lx *Lexer) scan() token.Token {
	start := lx.cursor.Mark()

	if r, n := lx.def.Rules().First(rules.Before, lx.text, int(start)); r != nil {
		lx.cursor.Advance(n)
		return lx.emit(start, token.CustomClass(r.Name))
	}
	if lx.scanComment() {
		return lx.emit(start, token.CommentClass)
	}
	if lx.scanQuote() {
		return lx.emit(start, token.QuoteClass)
	}
	// без ключевых слов слова не выделяются: каждая руна идёт шагом 7
	var wordEnd uint32
	if len(lx.def.Categories()) > 0 && lx.scanWord() {
		tok := lx.emit(start, token.PlainClass)
		if cat, ok := lx.def.Keyword(tok.Text); ok {
			tok.Class = token.KeywordClass(cat)
			return tok
		}
		// не ключевое слово: after-правила ещё могут его забрать
		wordEnd = lx.cursor.Off
		lx.cursor.Reset(start)
	}
	if wordEnd == 0 {
		if lx.eatLongest(lx.def.Operators()) {
			return lx.emit(start, token.OperatorClass)
		}
		if lx.eatLongest(lx.def.Delimiters()) {
			return lx.emit(start, token.DelimiterClass)
		}
	}
	if r, n := lx.def.Rules().First(rules.After, lx.text, int(start)); r != nil {
		lx.cursor.Advance(n)
		return lx.emit(start, token.CustomClass(r.Name))
	}
	if wordEnd > 0 {
		lx.cursor.Off = wordEnd
		return lx.emit(start, token.PlainClass)
	}
	lx.cursor.BumpRune()
	return lx.emit(start, token.PlainClass)
}

func (lx *Lexer) emit(start Mark, class token.Class) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Class: class, Span: sp, Text: lx.cursor.Src[sp.Start:sp.End]}
}

// All returns the token stream of src as a lazy sequence. Each iteration
// starts from the beginning of the buffer.
func All(def *langdef.Definition, src string, opts Options) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		lx := New(def, src, opts)
		for {
			tok, ok := lx.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Collect tokenizes src eagerly.
func Collect(def *langdef.Definition, src string, opts Options) []token.Token {
	var out []token.Token
	for tok := range All(def, src, opts) {
		out = append(out, tok)
	}
	return out
}

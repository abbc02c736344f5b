package lexer

// Options tune the token stream without changing what is classified.
type Options struct {
	// MergePlain joins runs of adjacent plain tokens into one token.
	// The stream still partitions the buffer.
	MergePlain bool
}

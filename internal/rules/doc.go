// Package rules compiles and runs the named regular-expression rules that a
// language definition attaches to the tokenizer.
//
// Patterns use the .NET/JavaScript dialect provided by regexp2, so look-around
// and back-references from existing highlighting definitions keep working.
// A rule is always anchored at the tokenizer position: it either classifies a
// non-empty span starting exactly there or does not match at all.
//
// Patterns written in the three-group form "()(body)()" classify only the
// second group; the first group must match empty, the third is context that
// stays unconsumed.
package rules

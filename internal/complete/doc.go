// Package complete builds per-definition completion indexes and resolves
// suggestions for the text before a cursor.
//
// An Index holds one prefix trie per scope key. The empty key is the global
// scope. Suggestions are always returned in declaration order, so results
// are deterministic for a given definition.
package complete

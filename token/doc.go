// Package token provides the lexical helpers of the literal grammar: nesting
// depth tracking, top level splitting of container payloads and delimiter
// matching.
//
//	token.Split(`a, [b, c], d`) // ["a", "[b, c]", "d"]
package token

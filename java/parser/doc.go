// Package parser builds lossless java syntax trees from source text and
// attributes them with types.
//
// # Tokens and trivia
//
// The lexer attaches the whitespace and comments in front of every token to
// that token as its prefix. The parser hands prefixes to the nodes it
// builds, so printing a tree concatenates prefixes and token text and
// reproduces the input byte for byte.
//
// # Coverage
//
// The parser understands package and import declarations, class, interface
// and enum declarations, methods, fields, blocks, if, while, return and
// throw statements, local variables and the common expressions including
// method invocations and instance creation. Any member or statement outside
// that subset becomes a java.Unknown node holding its text verbatim, so
// unsupported syntax never makes a unit fail to parse. Type parameter
// declarations are kept verbatim as well.
//
// Malformed input that cannot be delimited, such as an unterminated comment
// or a block missing its closing brace, yields a *rewrite.ParseError.
//
// # Attribution
//
// Parse attributes a batch of units against one java.Table: declarations
// first, then member signatures, then method bodies. Names that cannot be
// resolved against the batch become shell classes, so a reference to a type
// outside the batch still has a fully qualified name when its import makes
// that name unambiguous.
package parser

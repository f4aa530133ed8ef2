// Package parse turns structure descriptions into tree.Node trees.
// Two front ends produce the same model: a tokenizer plus cursor
// builder for the inline CLI form, and an indentation parser for the
// multi-line file form.
package parse

import "strings"

// TokenKind discriminates the three inline-form tokens.
type TokenKind int

const (
	// TokenPath is a slash-separated path argument.
	TokenPath TokenKind = iota
	// TokenAscend is the literal "..": move the cursor up one level.
	TokenAscend
	// TokenSibling is the literal ":": sugar for one ascend, placing
	// the next path beside the previous one instead of under it.
	TokenSibling
)

const (
	ascendMarker  = ".."
	siblingMarker = ":"
)

// Token is one element of the inline structure description.
// Segments is populated for TokenPath only.
type Token struct {
	Kind     TokenKind
	Arg      string
	Segments []string
	// ExplicitDir is set when the argument carried a trailing slash,
	// forcing the final segment to be a directory.
	ExplicitDir bool
}

// Tokenize splits raw command-line structure arguments into tokens,
// strictly in input order, with no deduplication. Path arguments are
// split on "/"; empty segments (doubled or leading separators) and
// "."/".." segments inside a path fail with MalformedPathError.
func Tokenize(args []string) ([]Token, error) {
	tokens := make([]Token, 0, len(args))
	for _, arg := range args {
		switch arg {
		case ascendMarker:
			tokens = append(tokens, Token{Kind: TokenAscend, Arg: arg})
		case siblingMarker:
			tokens = append(tokens, Token{Kind: TokenSibling, Arg: arg})
		default:
			tok, err := pathToken(arg)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

func pathToken(arg string) (Token, error) {
	if arg == "" {
		return Token{}, &MalformedPathError{Arg: arg, Reason: "empty argument"}
	}
	trimmed, explicitDir := strings.CutSuffix(arg, "/")
	if trimmed == "" {
		return Token{}, &MalformedPathError{Arg: arg, Reason: "no name before separator"}
	}
	segs := strings.Split(trimmed, "/")
	for _, s := range segs {
		switch s {
		case "":
			return Token{}, &MalformedPathError{Arg: arg, Reason: "empty path segment"}
		case ".", "..":
			return Token{}, &MalformedPathError{Arg: arg, Reason: "relative segment " + s + " inside path"}
		}
	}
	return Token{Kind: TokenPath, Arg: arg, Segments: segs, ExplicitDir: explicitDir}, nil
}

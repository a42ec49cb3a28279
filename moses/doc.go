// Package moses is a rule-based word tokenizer in the style of the Moses
// machine-translation toolkit.
//
// Tokenize splits a sentence into word-level tokens, keeping abbreviations,
// acronyms, decimal numbers, ellipses and contractions intact per language:
//
//	toks, err := moses.Tokenize("Mr. Smith isn't here.", "en")
//	// ["Mr.", "Smith", "isn", "&apos;t", "here", "."]
//
// A Tokenizer built with New accepts custom rule tables and protected
// patterns and is safe for concurrent use.
package moses

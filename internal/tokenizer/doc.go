// Package tokenizer splits Japanese text into morphemes.
//
// The Kagome implementation uses the IPA dictionary. Loading the dictionary
// is expensive, so callers normally share one instance obtained from Shared.
package tokenizer

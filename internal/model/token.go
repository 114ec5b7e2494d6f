package model

// NounPOS is the coarse part-of-speech tag of nouns in the IPA dictionary.
// Only tokens carrying exactly this tag are counted as words.
const NounPOS = "名詞"

// Token is one morpheme produced by the tokenizer.
// Tokens are immutable and ordered by their position in the source text.
type Token struct {
	// Surface is the form as it appears in the text.
	Surface string `json:"surface"`

	// POS is the coarse part-of-speech tag (名詞, 動詞, 助詞, ...).
	POS string `json:"pos"`

	// POSDetail1 to POSDetail3 are the finer part-of-speech sub-tags.
	POSDetail1 string `json:"posDetail1"`
	POSDetail2 string `json:"posDetail2"`
	POSDetail3 string `json:"posDetail3"`

	// BaseForm is the dictionary form.
	BaseForm string `json:"baseForm"`

	// Reading is the katakana reading.
	Reading string `json:"reading"`

	// Pronunciation is the katakana phonetic pronunciation.
	Pronunciation string `json:"pronunciation"`
}

// IsNoun reports whether the token's coarse part of speech is a noun.
func (t Token) IsNoun() bool {
	return t.POS == NounPOS
}

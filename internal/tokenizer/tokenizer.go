package tokenizer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	kagome "github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/nao1215/wordscope/internal/model"
)

// ErrTokenize is returned when the morphological analyzer cannot be used.
var ErrTokenize = errors.New("tokenization failed")

// Tokenizer converts text into an ordered token sequence.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]model.Token, error)
}

// IPA feature positions.
const (
	featurePOS = iota
	featurePOSDetail1
	featurePOSDetail2
	featurePOSDetail3
	featureConjugationType
	featureConjugationForm
	featureBaseForm
	featureReading
	featurePronunciation
)

// emptyFeature marks an unset IPA feature.
const emptyFeature = "*"

// Kagome tokenizes text with kagome and the IPA dictionary.
type Kagome struct {
	t *kagome.Tokenizer
}

// NewKagome loads the IPA dictionary and returns a tokenizer.
func NewKagome() (*Kagome, error) {
	t, err := kagome.New(ipa.Dict(), kagome.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load dictionary: %w", ErrTokenize, err)
	}
	return &Kagome{t: t}, nil
}

// Tokenize returns the morphemes of text in normal segmentation mode.
// Empty text yields no tokens.
func (k *Kagome) Tokenize(ctx context.Context, text string) ([]model.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	ktoks := k.t.Analyze(text, kagome.Normal)
	tokens := make([]model.Token, 0, len(ktoks))
	for _, kt := range ktoks {
		tokens = append(tokens, convert(kt.Surface, kt.Features()))
	}
	return tokens, nil
}

// convert maps IPA features onto a token. Unknown words carry fewer
// features; missing positions stay empty.
func convert(surface string, features []string) model.Token {
	return model.Token{
		Surface:       surface,
		POS:           feature(features, featurePOS),
		POSDetail1:    feature(features, featurePOSDetail1),
		POSDetail2:    feature(features, featurePOSDetail2),
		POSDetail3:    feature(features, featurePOSDetail3),
		BaseForm:      feature(features, featureBaseForm),
		Reading:       feature(features, featureReading),
		Pronunciation: feature(features, featurePronunciation),
	}
}

func feature(features []string, i int) string {
	if i >= len(features) || features[i] == emptyFeature {
		return ""
	}
	return features[i]
}

var shared = sync.OnceValues(func() (Tokenizer, error) {
	return NewKagome()
})

// Shared returns the process-wide tokenizer. The dictionary is loaded on
// first use; concurrent first callers wait for the same initialization.
func Shared() (Tokenizer, error) {
	return shared()
}

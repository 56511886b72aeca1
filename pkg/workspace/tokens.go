package workspace

import (
	"github.com/tiktoken-go/tokenizer"
)

// EstimateTokens counts text in the cl100k_base encoding, close enough to
// what current chat models bill for.
func EstimateTokens(text string) (int, error) {
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return 0, err
	}
	ids, _, err := enc.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

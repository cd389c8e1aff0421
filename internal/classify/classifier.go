package classify

import (
	"context"

	apperrors "spendwise/internal/errors"
)

// ZeroShotClient ranks candidate labels for a piece of text without
// category-specific training. Implementations must distinguish a
// transport/HTTP failure (error) from "the model returned no labels"
// (empty slice, nil error).
type ZeroShotClient interface {
	Classify(ctx context.Context, text string, candidateLabels []string) ([]string, error)
}

// Classifier maps expense text to a category: keyword table first,
// zero-shot service as the fallback.
type Classifier struct {
	zeroShot ZeroShotClient
}

// NewClassifier creates a Classifier backed by the given zero-shot
// client.
func NewClassifier(zeroShot ZeroShotClient) *Classifier {
	return &Classifier{zeroShot: zeroShot}
}

// Classify returns the category for text. Keyword matches never touch
// the network. When no keyword matches, the zero-shot service is asked
// to rank the full candidate set; its top label wins, an empty ranking
// yields FallbackLabel, and a failed call is a hard error; the caller
// decides what to do, never a silently defaulted category.
func (c *Classifier) Classify(ctx context.Context, text string) (string, error) {
	if category, ok := matchKeyword(text); ok {
		return category, nil
	}

	labels, err := c.zeroShot.Classify(ctx, text, Labels())
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrClassifierUnavailable, err)
	}
	if len(labels) == 0 {
		return FallbackLabel, nil
	}
	return labels[0], nil
}

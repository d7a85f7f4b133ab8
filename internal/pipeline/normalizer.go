package pipeline

import (
	"math"

	"github.com/dvloznov/finance-logs/internal/domain"
)

// amountArtifactThreshold is the magnitude above which an extracted amount is
// assumed to carry three extra digits from a dropped decimal point (e.g.
// $45.00 misread as 45000).
const amountArtifactThreshold = 1000

// Normalizer filters and cleans raw extracted transactions into the set
// eligible for upload.
type Normalizer struct {
	excluded map[string]struct{}
}

// NewNormalizer creates a Normalizer with the given exclusion keywords.
// Matching is exact string equality against the transaction description, not
// substring and not case-insensitive.
func NewNormalizer(excludedKeywords []string) *Normalizer {
	excluded := make(map[string]struct{}, len(excludedKeywords))
	for _, kw := range excludedKeywords {
		excluded[kw] = struct{}{}
	}
	return &Normalizer{excluded: excluded}
}

// Normalize applies the exclusion filter, then amount normalization, to each
// record in order. The input slice is not modified; the result preserves
// extraction order.
func (n *Normalizer) Normalize(records []domain.Transaction) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(records))

	for _, record := range records {
		if _, drop := n.excluded[record.Description]; drop {
			continue
		}
		record.Amount = normalizeAmount(record.Amount)
		result = append(result, record)
	}

	return result
}

// normalizeAmount strips the sign and corrects the dropped-decimal extraction
// artifact. Idempotent for magnitudes at or below the threshold.
func normalizeAmount(amount float64) float64 {
	amount = math.Abs(amount)
	if amount > amountArtifactThreshold {
		amount /= 1000
	}
	return amount
}

package proxy

import "strings"

// Verdict is the outcome of evaluating a proxy response body
type Verdict int

const (
	VerdictRejected Verdict = iota
	VerdictPartial
	VerdictFull
)

func (v Verdict) String() string {
	switch v {
	case VerdictFull:
		return "full"
	case VerdictPartial:
		return "partial"
	default:
		return "rejected"
	}
}

// AcceptancePolicy decides whether fetched content is worth extracting from.
// Keyword and phrase checks are case-insensitive.
type AcceptancePolicy struct {
	FullContentMinLength    int
	PartialContentMinLength int
	ProductKeywords         []string
	BlockPhrases            []string
}

// DefaultAcceptancePolicy returns the thresholds used by the proxy cascade
func DefaultAcceptancePolicy() AcceptancePolicy {
	return AcceptancePolicy{
		FullContentMinLength:    500,
		PartialContentMinLength: 200,
		ProductKeywords:         []string{"price", "product", "title"},
		BlockPhrases:            []string{"automated access", "captcha"},
	}
}

// Evaluate classifies a response body.
//
// Short bodies without any product keyword are rejected. Long bodies without
// a block phrase are accepted in full. Anything else passes as partial content
// only if it is longer than the partial threshold and mentions a product keyword.
func (p AcceptancePolicy) Evaluate(body string) Verdict {
	lower := strings.ToLower(body)
	hasKeyword := containsAny(lower, p.ProductKeywords)

	if len(body) <= p.FullContentMinLength && !hasKeyword {
		return VerdictRejected
	}
	if len(body) > p.FullContentMinLength && !containsAny(lower, p.BlockPhrases) {
		return VerdictFull
	}
	if len(body) > p.PartialContentMinLength && hasKeyword {
		return VerdictPartial
	}
	return VerdictRejected
}

func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"catalog-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// groupedDigits matches an integer part whose commas separate groups of three digits
var groupedDigits = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d*)?$`)

// ParsePrice strips leading currency markers from text and parses the rest
// as a non-negative decimal. Commas are accepted only as thousands separators.
func ParsePrice(text string) (decimal.Decimal, error) {
	cleaned := strings.TrimLeftFunc(strings.TrimSpace(text), func(r rune) bool {
		return unicode.Is(unicode.Sc, r) || unicode.IsLetter(r) || unicode.IsSpace(r)
	})
	if strings.Contains(cleaned, ",") {
		if !groupedDigits.MatchString(cleaned) {
			return decimal.Zero, fmt.Errorf("%w: price %q", types.ErrMalformedNumber, text)
		}
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: price %q", types.ErrMalformedNumber, text)
	}

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q", types.ErrMalformedNumber, text)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative price %q", types.ErrMalformedNumber, text)
	}
	return price, nil
}

// ParseReviewCount parses the leading whitespace-delimited token of text,
// e.g. "23 reviews" -> 23.
func ParseReviewCount(text string) (int, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return 0, fmt.Errorf("%w: empty review count", types.ErrMalformedNumber)
	}

	count, err := strconv.Atoi(tokens[0])
	if err != nil || count < 0 {
		return 0, fmt.Errorf("%w: review count %q", types.ErrMalformedNumber, text)
	}
	return count, nil
}

// CountRatingMarkers counts the elements matching scopeSelector below node.
// Zero markers is a valid rating.
func CountRatingMarkers(node *goquery.Selection, scopeSelector string) int {
	return node.Find(scopeSelector).Length()
}

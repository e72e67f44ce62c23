package adapters

import (
	"strings"
	"testing"

	"catalog-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"$129.99", "129.99"},
		{"$0", "0"},
		{" $1178.1 ", "1178.1"},
		{"$1,099.00", "1099"},
		{"$1,234,567.5", "1234567.5"},
		{"$12,000", "12000"},
		{"€24.50", "24.5"},
		{"USD 15", "15"},
		{"499.99", "499.99"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			price, err := ParsePrice(tt.text)

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(price), "got %s", price)
		})
	}
}

func TestParsePrice_Malformed(t *testing.T) {
	for _, text := range []string{"", "$", "free", "$12abc", "$-5", "call us", "€24,50", "$1,09", "$1234,567", "$,100"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParsePrice(text)

			assert.ErrorIs(t, err, types.ErrMalformedNumber)
		})
	}
}

func TestParseReviewCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"15 reviews", 15},
		{"1 review", 1},
		{"0 reviews", 0},
		{"  7   reviews ", 7},
		{"42", 42},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			count, err := ParseReviewCount(tt.text)

			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}
}

func TestParseReviewCount_Malformed(t *testing.T) {
	for _, text := range []string{"", "   ", "no reviews", "-3 reviews", "1.5 reviews"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseReviewCount(text)

			assert.ErrorIs(t, err, types.ErrMalformedNumber)
		})
	}
}

func TestCountRatingMarkers(t *testing.T) {
	const scope = ".ratings > p:nth-of-type(2) > span"

	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "three stars",
			html: `<div class="ratings"><p>15 reviews</p><p><span class="star"></span><span class="star"></span><span class="star"></span></p></div>`,
			want: 3,
		},
		{
			name: "permuted siblings",
			html: `<div class="ratings"><p>15 reviews</p><p><span class="b"></span><span class="star"></span><span class="a"></span></p></div>`,
			want: 3,
		},
		{
			name: "no markers",
			html: `<div class="ratings"><p>15 reviews</p><p></p></div>`,
			want: 0,
		},
		{
			name: "no rating container",
			html: `<div class="other"></div>`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
			require.NoError(t, err)

			first := CountRatingMarkers(doc.Selection, scope)
			second := CountRatingMarkers(doc.Selection, scope)

			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, second)
		})
	}
}

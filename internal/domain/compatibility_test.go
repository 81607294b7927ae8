package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSign(t *testing.T) {
	assert.Equal(t, "Leo", NormalizeSign("lEO"))
	assert.Equal(t, "Sagittarius", NormalizeSign("  sagittarius "))
	assert.Equal(t, "", NormalizeSign("   "))
}

func TestZodiacScore(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"Libra", "Libra", 20},
		{"libra", "LIBRA", 20},
		{"Aries", "Leo", 15},
		{"Aries", "Taurus", 5},
		{"Aries", "", 0},
		{"", "", 0},
		{"Aries", "Ophiuchus", 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZodiacScore(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestZodiacTableShape(t *testing.T) {
	assert.Len(t, zodiacCompatibility, 12)
	for sign, compatible := range zodiacCompatibility {
		assert.Len(t, compatible, 4, sign)
		for _, other := range compatible {
			assert.Contains(t, zodiacCompatibility, other, sign)
			assert.NotEqual(t, sign, other)
		}
	}
}

func TestBiosOverlap(t *testing.T) {
	assert.True(t, BiosOverlap("I like jazz and tea", "jazz"))
	assert.True(t, BiosOverlap("jazz", "I like jazz and tea"))
	assert.True(t, BiosOverlap("same", "same"))
	assert.False(t, BiosOverlap("Jazz", "I like jazz"))
	assert.False(t, BiosOverlap("", "anything"))
	assert.False(t, BiosOverlap("anything", ""))
	assert.False(t, BiosOverlap("", ""))
}

func TestCompatibility(t *testing.T) {
	p := func(zodiac, bio string) *Profile { return &Profile{Zodiac: zodiac, Bio: bio} }

	tests := []struct {
		name        string
		a, b        *Profile
		wantScore   int
		wantDetails CompatibilityDetails
	}{
		{"same sign", p("Libra", "coffee"), p("Libra", "tea"), 70, CompatibilityDetails{Zodiac: 20}},
		{"listed compatible", p("Aries", "coffee"), p("Leo", "tea"), 65, CompatibilityDetails{Zodiac: 15}},
		{"other", p("Aries", "coffee"), p("Taurus", "tea"), 55, CompatibilityDetails{Zodiac: 5}},
		{"other with overlap", p("Aries", "coffee and tea"), p("Taurus", "tea"), 65,
			CompatibilityDetails{Zodiac: 5, Interests: 10}},
		{"no signs", p("", "a"), p("", "b"), 50, CompatibilityDetails{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, details := Compatibility(tt.a, tt.b)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantDetails, details)
		})
	}
}

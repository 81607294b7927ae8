package domain

import (
	"strings"
	"unicode"
)

const (
	baseScore       = 50
	sameSignScore   = 20
	compatibleScore = 15
	otherSignScore  = 5
	bioOverlapScore = 10
)

// zodiacCompatibility lists, for each sign, the signs it gets along with.
// Lookups only go from the first sign to the second.
var zodiacCompatibility = map[string][]string{
	"Aries":       {"Leo", "Sagittarius", "Gemini", "Aquarius"},
	"Taurus":      {"Virgo", "Capricorn", "Cancer", "Pisces"},
	"Gemini":      {"Libra", "Aquarius", "Aries", "Leo"},
	"Cancer":      {"Scorpio", "Pisces", "Taurus", "Virgo"},
	"Leo":         {"Aries", "Sagittarius", "Gemini", "Libra"},
	"Virgo":       {"Taurus", "Capricorn", "Cancer", "Scorpio"},
	"Libra":       {"Gemini", "Aquarius", "Leo", "Sagittarius"},
	"Scorpio":     {"Cancer", "Pisces", "Virgo", "Capricorn"},
	"Sagittarius": {"Aries", "Leo", "Libra", "Aquarius"},
	"Capricorn":   {"Taurus", "Virgo", "Scorpio", "Pisces"},
	"Aquarius":    {"Gemini", "Libra", "Aries", "Sagittarius"},
	"Pisces":      {"Cancer", "Scorpio", "Taurus", "Capricorn"},
}

// NormalizeSign trims a sign and converts it to title case ("lEO" -> "Leo").
func NormalizeSign(sign string) string {
	sign = strings.TrimSpace(sign)
	if sign == "" {
		return ""
	}
	r := []rune(strings.ToLower(sign))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// ZodiacScore returns the zodiac contribution for a pair of signs.
func ZodiacScore(a, b string) int {
	a, b = NormalizeSign(a), NormalizeSign(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return sameSignScore
	}
	for _, s := range zodiacCompatibility[a] {
		if s == b {
			return compatibleScore
		}
	}
	return otherSignScore
}

// BiosOverlap reports whether either bio literally contains the other.
// Empty bios never overlap.
func BiosOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Compatibility scores two profiles: a base of 50 plus the zodiac and
// bio-overlap contributions.
func Compatibility(a, b *Profile) (int, CompatibilityDetails) {
	details := CompatibilityDetails{Zodiac: ZodiacScore(a.Zodiac, b.Zodiac)}
	if BiosOverlap(a.Bio, b.Bio) {
		details.Interests = bioOverlapScore
	}
	return baseScore + details.Zodiac + details.Interests, details
}

package quantity

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// vulgarFractions maps single-glyph fractions to their ASCII n/d form.
// A digit immediately before a glyph ("1½") is treated as a mixed number.
var vulgarFractions = map[rune]string{
	'½': "1/2",
	'⅓': "1/3",
	'⅔': "2/3",
	'¼': "1/4",
	'¾': "3/4",
	'⅕': "1/5",
	'⅖': "2/5",
	'⅗': "3/5",
	'⅘': "4/5",
	'⅙': "1/6",
	'⅚': "5/6",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
}

var (
	rangeSplit = regexp.MustCompile(`\s*(?:–|-|\b[oO]\b|\b[oO]r\b)\s*`)
	mixedForm  = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)$`)
	fracForm   = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)
)

// NormalizeGlyphs rewrites vulgar fraction glyphs to ASCII "n/d" form,
// inserting a space after a preceding digit so "1½" becomes "1 1/2".
func NormalizeGlyphs(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if ascii, ok := vulgarFractions[r]; ok {
			if prev >= '0' && prev <= '9' {
				b.WriteByte(' ')
			}
			b.WriteString(ascii)
			prev = '/'
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// Parse converts a numeric token into a float64.
//
// Accepted forms: integers ("2"), decimals ("0.5", comma separator
// tolerated), fractions ("1/2"), mixed numbers ("1 1/2") and ranges or
// disjunctions ("2-3", "2–3", "2 o 3", "2 or 3"). For a range only the
// first value is used: the policy is lower bound, not midpoint.
// Fractions go through rational arithmetic so 1/3 does not accumulate
// division drift before the final float conversion.
//
// A token that carries no parseable number yields 0, which downstream
// code reads as "no quantity stated" rather than an error.
func Parse(token string) float64 {
	token = strings.TrimSpace(NormalizeGlyphs(token))
	if token == "" {
		return 0
	}

	// Keep the lower bound of a range or disjunction.
	if parts := rangeSplit.Split(token, 2); len(parts) > 1 {
		token = strings.TrimSpace(parts[0])
		if token == "" {
			return 0
		}
	}

	if m := mixedForm.FindStringSubmatch(token); m != nil {
		whole, _ := strconv.ParseInt(m[1], 10, 64)
		num, _ := strconv.ParseInt(m[2], 10, 64)
		den, _ := strconv.ParseInt(m[3], 10, 64)
		if den == 0 {
			return float64(whole)
		}
		rat := new(big.Rat).SetInt64(whole)
		rat.Add(rat, big.NewRat(num, den))
		f, _ := rat.Float64()
		return f
	}

	if m := fracForm.FindStringSubmatch(token); m != nil {
		num, _ := strconv.ParseInt(m[1], 10, 64)
		den, _ := strconv.ParseInt(m[2], 10, 64)
		if den == 0 {
			return 0
		}
		f, _ := big.NewRat(num, den).Float64()
		return f
	}

	// Decimal or integer. Spanish sources write "0,5".
	plain := token
	if strings.Contains(plain, ",") && !strings.Contains(plain, ".") {
		plain = strings.ReplaceAll(plain, ",", ".")
	}
	if f, err := strconv.ParseFloat(plain, 64); err == nil && f >= 0 {
		return f
	}

	return 0
}

// Display renders a quantity back into cook-friendly notation: common
// fractions reappear as "1/2" or "1 1/2", whole numbers lose the
// decimal point, everything else keeps up to two decimals.
func Display(q float64) string {
	if q <= 0 {
		return ""
	}

	whole := int64(q)
	frac := q - float64(whole)

	if name, ok := fractionName(frac); ok {
		if whole == 0 {
			return name
		}
		return strconv.FormatInt(whole, 10) + " " + name
	}

	if frac == 0 {
		return strconv.FormatInt(whole, 10)
	}
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(q, 'f', 2, 64), "0"), ".")
}

func fractionName(frac float64) (string, bool) {
	const eps = 1e-9
	for ascii, val := range map[string]float64{
		"1/4": 0.25,
		"1/3": 1.0 / 3.0,
		"1/2": 0.5,
		"2/3": 2.0 / 3.0,
		"3/4": 0.75,
	} {
		if frac > val-eps && frac < val+eps {
			return ascii, true
		}
	}
	return "", false
}

package domain

// Control digit weights for the two mod-11 checksums of a fødselsnummer.
// k1 covers digits 0-8, k2 covers digits 0-9 (k1 included).
var (
	controlWeights1 = []int{3, 7, 6, 1, 8, 9, 4, 5, 2}
	controlWeights2 = []int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}
)

const (
	nationalIDLength = 11
	nationalIDPrefix = 9
)

// IsValidNationalID reports whether s is exactly 11 ASCII digits carrying
// both correct control digits. It never fails; malformed input is false.
//
// Day and month plausibility are not checked. A number with month 13 is valid
// as long as its checksums are.
func IsValidNationalID(s string) bool {
	if len(s) != nationalIDLength || !isASCIIDigits(s) {
		return false
	}
	k1, ok := controlDigit(s, controlWeights1)
	if !ok || k1 != s[9] {
		return false
	}
	k2, ok := controlDigit(s, controlWeights2)
	return ok && k2 == s[10]
}

// NationalIDControlDigits returns the two control digits for a 9-digit
// prefix (birth date and individual number). ok is false when prefix is not
// 9 ASCII digits, or when either checksum lands on remainder 1, which makes
// the prefix unusable.
//
// Example:
//
//	ctl, ok := NationalIDControlDigits("010100004") // "63", true
//	n, _ := ParseNationalID("010100004" + ctl)
func NationalIDControlDigits(prefix string) (string, bool) {
	if len(prefix) != nationalIDPrefix || !isASCIIDigits(prefix) {
		return "", false
	}
	k1, ok := controlDigit(prefix, controlWeights1)
	if !ok {
		return "", false
	}
	k2, ok := controlDigit(prefix+string(k1), controlWeights2)
	if !ok {
		return "", false
	}
	return string([]byte{k1, k2}), true
}

// controlDigit computes the mod-11 control digit over the leading
// len(weights) digits of s and returns it as an ASCII byte. Remainder 1 has
// no control digit and reports ok == false.
// Callers guarantee s holds at least len(weights) ASCII digits.
func controlDigit(s string, weights []int) (byte, bool) {
	sum := 0
	for i, w := range weights {
		sum += int(s[i]-'0') * w
	}
	switch r := sum % 11; r {
	case 0:
		return '0', true
	case 1:
		return 0, false
	default:
		return byte('0' + 11 - r), true
	}
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

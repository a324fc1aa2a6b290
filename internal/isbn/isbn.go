// Package isbn validates ISBN-13 codes and converts them to the numeric
// identifier used as the books primary key.
package isbn

// Parse validates a 13-digit ISBN string and returns it reinterpreted as a
// decimal integer. The input must be exactly 13 ASCII digits whose weighted
// checksum (weights 1,3,1,3,... over positions 0..12) is divisible by 10;
// anything else reports ok=false. This is a benign validation failure, not
// an error.
func Parse(s string) (code int64, ok bool) {
	if len(s) != 13 {
		return 0, false
	}
	sum := 0
	for i := 0; i < 13; i++ {
		d := s[i] - '0'
		if d > 9 {
			return 0, false
		}
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += weight * int(d)
		code = code*10 + int64(d)
	}
	if sum%10 != 0 {
		return 0, false
	}
	return code, true
}

// Valid reports whether a numeric identifier is a checksummed ISBN-13.
// It is the counterpart of Parse for identifiers that arrive already in
// integer form, such as wire payloads.
func Valid(code int64) bool {
	if code < 0 || code > 9_999_999_999_999 {
		return false
	}
	digits := [13]byte{}
	for i := 12; i >= 0; i-- {
		digits[i] = byte('0' + code%10)
		code /= 10
	}
	_, ok := Parse(string(digits[:]))
	return ok
}

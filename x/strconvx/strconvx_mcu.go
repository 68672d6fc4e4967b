//go:build rp2040 || rp2350

package strconvx

// Number formatting without strconv. Bases 2..36; anything else formats in
// base 10. FormatFloat only produces fixed-point output with round-half-up,
// which is all the log and display lines need.

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

func FormatInt(i int64, base int) string {
	if i < 0 {
		return "-" + FormatUint(uint64(-i), base)
	}
	return FormatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	if u == 0 {
		return "0"
	}
	var buf [64]byte
	i := len(buf)
	b := uint64(base)
	for u > 0 {
		i--
		buf[i] = digits[u%b]
		u /= b
	}
	return string(buf[i:])
}

// FormatFloat formats f as %.<prec>f. fmt and bitSize are accepted for
// signature parity and ignored.
func FormatFloat(f float64, fmt byte, prec, _ int) string {
	switch {
	case f != f:
		return "NaN"
	case f > maxFixed:
		return "+Inf"
	case f < -maxFixed:
		return "-Inf"
	}
	if prec < 0 {
		prec = 6
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	pow := uint64(1)
	for i := 0; i < prec; i++ {
		pow *= 10
	}
	whole := uint64(f)
	frac := uint64((f-float64(whole))*float64(pow) + 0.5)
	if frac >= pow {
		whole++
		frac -= pow
	}
	if whole == 0 && frac == 0 {
		sign = ""
	}
	if prec == 0 {
		return sign + FormatUint(whole, 10)
	}

	var buf [20]byte
	n := len(buf)
	for i := 0; i < prec && n > 0; i++ {
		n--
		buf[n] = '0' + byte(frac%10)
		frac /= 10
	}
	return sign + FormatUint(whole, 10) + "." + string(buf[n:])
}

// Values beyond this do not fit the integer part and are shown as infinite.
const maxFixed = 1.8e19

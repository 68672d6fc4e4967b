//go:build rp2040 || rp2350

// Package fmtx formats log lines without pulling fmt into the firmware.
//
// MCU builds understand %s %v %d %x %f %t and %%, with an optional width and
// precision (%8.2f, %.3s). Errors and Stringers print through their methods.
// Anything else prints as "<?>".
package fmtx

import (
	"io"

	"envmon-go/x/strconvx"
)

func Sprintf(format string, a ...any) string {
	return string(appendf(nil, format, a))
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return w.Write(appendf(nil, format, a))
}

func appendf(b []byte, format string, args []any) []byte {
	next := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b = append(b, c)
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b = append(b, '%')
			continue
		}
		width, prec := -1, -1
		i, width = number(format, i)
		if i < len(format) && format[i] == '.' {
			i, prec = number(format, i+1)
			if prec < 0 {
				prec = 0
			}
		}
		if i >= len(format) {
			break
		}
		if next >= len(args) {
			b = append(b, "%!"...)
			b = append(b, format[i])
			continue
		}
		s := arg(format[i], prec, args[next])
		next++
		for n := width - len(s); n > 0; n-- {
			b = append(b, ' ')
		}
		b = append(b, s...)
	}
	return b
}

// number parses a decimal at s[i:]; -1 when there is none.
func number(s string, i int) (int, int) {
	n := -1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if n < 0 {
			n = 0
		}
		n = n*10 + int(s[i]-'0')
		i++
	}
	return i, n
}

func arg(verb byte, prec int, v any) string {
	switch verb {
	case 'f', 'F':
		if prec < 0 {
			prec = 6
		}
		if f, ok := float(v); ok {
			return strconvx.FormatFloat(f, 'f', prec, 64)
		}
	case 'd':
		if n, ok := integer(v); ok {
			return strconvx.FormatInt(n, 10)
		}
	case 'x':
		if n, ok := integer(v); ok {
			return strconvx.FormatUint(uint64(n), 16)
		}
	case 's':
		s := value(v)
		if prec >= 0 && prec < len(s) {
			s = s[:prec]
		}
		return s
	case 'v', 't':
		return value(v)
	}
	return value(v)
}

func value(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case error:
		return x.Error()
	case interface{ String() string }:
		return x.String()
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float32:
		return strconvx.FormatFloat(float64(x), 'f', 6, 32)
	case float64:
		return strconvx.FormatFloat(x, 'f', 6, 64)
	}
	if u, ok := v.(uint64); ok {
		return strconvx.FormatUint(u, 10)
	}
	if n, ok := integer(v); ok {
		return strconvx.FormatInt(n, 10)
	}
	return "<?>"
}

func integer(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	}
	return 0, false
}

func float(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	if n, ok := integer(v); ok {
		return float64(n), true
	}
	return 0, false
}

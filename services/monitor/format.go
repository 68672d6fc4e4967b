package monitor

import "envmon-go/x/strconvx"

func ftoa(v float32, prec int) string {
	return strconvx.FormatFloat(float64(v), 'f', prec, 32)
}

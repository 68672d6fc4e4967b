package main

import (
	"errors"
	"math"
	"sort"
	"time"
)

// scenario scripts the environment as a function of simulated time.
type scenario struct {
	name     string
	about    string
	distance func(t time.Duration) float32 // cm, NaN = no echo
	lux      func(t time.Duration) (float32, error)
}

var errLightBus = errors.New("i2c: nack")

var scenarios = map[string]scenario{
	"approach": {
		about: "someone walks up to the panel and leaves again at dusk",
		distance: func(t time.Duration) float32 {
			s := float32(t.Seconds())
			switch {
			case s < 10:
				return 280 - 24*s // 280 -> 40
			case s < 20:
				return 40
			default:
				return 40 + 30*(s-20) // leaves, crosses 300 cm at ~28.7 s
			}
		},
		lux: func(t time.Duration) (float32, error) {
			return 120 - 3*float32(t.Seconds()), nil
		},
	},
	"dropout": {
		about: "the ranging sensor stops answering after 6 s",
		distance: func(t time.Duration) float32 {
			if t >= 6*time.Second {
				return float32(math.NaN())
			}
			return 120
		},
		lux: func(time.Duration) (float32, error) { return 40, nil },
	},
	"dark": {
		about: "a dark room with someone close by",
		distance: func(time.Duration) float32 { return 80 },
		lux: func(t time.Duration) (float32, error) {
			return float32(int(t.Seconds()) % 6), nil
		},
	},
	"bright": {
		about: "full daylight with a flaky light sensor",
		distance: func(time.Duration) float32 { return 150 },
		lux: func(t time.Duration) (float32, error) {
			if int(t/time.Second)%4 == 3 {
				return 0, errLightBus
			}
			return 20000, nil
		},
	},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

package scout

import "math"

// mean returns the arithmetic mean, or 0 for an empty sample.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd returns the sample standard deviation. Degenerate samples
// (fewer than two points) are defined as 0 rather than an arithmetic error.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func numOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func fptr(v float64) *float64 {
	return &v
}

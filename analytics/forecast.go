package analytics

// Forecast projects tomorrow's sales and the next seven days' total from a
// short daily history. For four or more points an ordinary least-squares line
// is fitted and each extrapolated value is blended 50/50 with the historical
// mean to damp noise on short windows; shorter histories fall back to the
// flat average. Results are clamped to zero and, when the mean is positive,
// capped at 3x the mean for tomorrow and 21x for the week.
func Forecast(values []float64) (tomorrow, next7 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	avg := mean(values)
	if n < 4 {
		return avg, avg * 7
	}

	slope, intercept, ok := fitLine(values)
	if !ok {
		return avg, avg * 7
	}

	tomorrow = blendPoint(slope, intercept, avg, float64(n))

	var weekRegression float64
	for i := 0; i < 7; i++ {
		weekRegression += intercept + slope*float64(n+i)
	}
	next7 = 0.5*weekRegression + 0.5*avg*7
	if next7 < 0 {
		next7 = 0
	}
	if avg > 0 && next7 > 21*avg {
		next7 = 21 * avg
	}

	return tomorrow, next7
}

// ForecastSeries applies the same regression, blend and cap independently at
// each future offset, yielding one value per day. It is not a split of the
// seven-day total.
func ForecastSeries(values []float64, daysAhead int) []float64 {
	if daysAhead <= 0 {
		return []float64{}
	}
	series := make([]float64, daysAhead)
	n := len(values)
	if n == 0 {
		return series
	}

	avg := mean(values)
	slope, intercept, ok := 0.0, 0.0, false
	if n >= 4 {
		slope, intercept, ok = fitLine(values)
	}
	for i := range series {
		if !ok {
			series[i] = avg
			continue
		}
		series[i] = blendPoint(slope, intercept, avg, float64(n+i))
	}
	return series
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// fitLine returns the closed-form least-squares slope and intercept over
// x = 0..n-1. ok is false when the denominator degenerates; that cannot
// happen for n >= 4 with consecutive x, but it is guarded anyway.
func fitLine(values []float64) (slope, intercept float64, ok bool) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0, false
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}

// blendPoint extrapolates the regression to x, blends it with the mean and
// applies the zero clamp and the 3x-mean cap.
func blendPoint(slope, intercept, avg, x float64) float64 {
	v := 0.5*(intercept+slope*x) + 0.5*avg
	if v < 0 {
		v = 0
	}
	if avg > 0 && v > 3*avg {
		v = 3 * avg
	}
	return v
}

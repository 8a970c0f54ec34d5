package analysis

// Autocorrelation returns the normalised autocorrelation of data for lags
// 0..maxLag. A constant series has no fluctuations and yields nil.
func Autocorrelation(data []float64, maxLag int) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range data {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(n)
	if variance == 0 {
		return nil
	}

	rho := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i+lag < n; i++ {
			sum += (data[i] - mean) * (data[i+lag] - mean)
		}
		rho[lag] = sum / float64(n-lag) / variance
	}
	return rho
}

// IntegratedAutocorrelationTime returns τ = 1/2 + Σ ρ(t), summed until the
// first non-positive lag. Uncorrelated samples give τ ≈ 1/2.
func IntegratedAutocorrelationTime(data []float64) float64 {
	rho := Autocorrelation(data, len(data)/2)
	if rho == nil {
		return 0
	}
	tau := 0.5
	for _, r := range rho[1:] {
		if r <= 0 {
			break
		}
		tau += r
	}
	return tau
}

// Series extracts one observable from a history in order.
func Series[S any](history []S, field func(S) float64) []float64 {
	out := make([]float64, len(history))
	for i, s := range history {
		out[i] = field(s)
	}
	return out
}

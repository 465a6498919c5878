package solver

// Func is a scalar derivative dx/dt = f(x, t). The index argument is an
// auxiliary parameter passed through unchanged; it is not integrated.
type Func func(x, t float64, index int) float64

// Integrate advances x0 across the given time grid with the classic
// fixed-step fourth-order scheme and returns the value at every grid point.
// The first returned value is x0 itself.
func Integrate(f Func, x0 float64, times []float64, index int) []float64 {
	result := make([]float64, len(times))
	if len(times) == 0 {
		return result
	}

	x := x0
	result[0] = x

	for i := 1; i < len(times); i++ {
		t := times[i-1]
		h := times[i] - times[i-1]

		k1 := f(x, t, index)
		k2 := f(x+0.5*h*k1, t+0.5*h, index)
		k3 := f(x+0.5*h*k2, t+0.5*h, index)
		k4 := f(x+h*k3, t+h, index)

		x += h / 6.0 * (k1 + 2*k2 + 2*k3 + k4)
		result[i] = x
	}

	return result
}

// Grid builds a closed uniform time grid from t0 to t1 with n sub-steps
// (n+1 points). The last point is exactly t1.
func Grid(t0, t1 float64, n int) []float64 {
	points := make([]float64, n+1)
	h := (t1 - t0) / float64(n)
	for i := 0; i <= n; i++ {
		points[i] = t0 + float64(i)*h
	}
	points[n] = t1
	return points
}

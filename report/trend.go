package report

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// quadraticTrend fits y over the day offsets of dates with least squares and
// returns the fitted value for every point. The degree drops below 2 when there
// are fewer than three distinct dates.
func quadraticTrend(dates []time.Time, values []float64) []float64 {
	n := len(values)
	fitted := make([]float64, n)
	if n == 0 || len(dates) != n {
		return fitted
	}

	xs := make([]float64, n)
	distinct := make(map[float64]struct{}, n)
	mean := 0.0
	for i, date := range dates {
		xs[i] = date.Sub(dates[0]).Hours() / 24
		distinct[xs[i]] = struct{}{}
		mean += xs[i]
	}
	mean /= float64(n)
	for i := range xs {
		xs[i] -= mean
	}

	degree := len(distinct) - 1
	if degree > 2 {
		degree = 2
	}

	coefficients, ok := leastSquares(xs, values, degree)
	if !ok {
		coefficients, _ = leastSquares(xs, values, 0)
	}
	for i, x := range xs {
		y, power := 0.0, 1.0
		for _, c := range coefficients {
			y += c * power
			power *= x
		}
		fitted[i] = math.Round(y*1000) / 1000
	}
	return fitted
}

// leastSquares fits a polynomial of the given degree with a QR factorisation of
// the Vandermonde matrix. Coefficients are lowest power first.
func leastSquares(xs, ys []float64, degree int) ([]float64, bool) {
	size := degree + 1
	if len(xs) < size || len(ys) != len(xs) {
		return nil, false
	}

	design := mat.NewDense(len(xs), size, nil)
	for i, x := range xs {
		power := 1.0
		for j := 0; j < size; j++ {
			design.Set(i, j, power)
			power *= x
		}
	}

	var qr mat.QR
	qr.Factorize(design)
	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, mat.NewDense(len(ys), 1, append([]float64(nil), ys...))); err != nil {
		return nil, false
	}

	coefficients := make([]float64, size)
	for j := range coefficients {
		coefficients[j] = solution.At(j, 0)
	}
	return coefficients, true
}

package analyzer

import (
	"math"
	"sort"

	"go-data-quality/internal/model"
)

// GenerateStatistics computes mean, median, min, max and sample standard
// deviation for every column whose non-null values are entirely numeric.
// All-null columns qualify vacuously and report null for every statistic.
// Non-finite intermediates never escape: anything undefined becomes null.
func GenerateStatistics(d *model.Dataset) map[string]model.ColumnStats {
	stats := map[string]model.ColumnStats{}
	for _, col := range d.Columns {
		nums, numeric := numericColumn(d, col)
		if !numeric {
			continue
		}
		stats[col] = columnStats(nums)
	}
	return stats
}

// numericColumn gathers the non-null values of a column, reporting false
// when any of them is not a number.
func numericColumn(d *model.Dataset, col string) ([]float64, bool) {
	nums := []float64{}
	for _, row := range d.Rows {
		v := row.Cell(col)
		if v.IsNull() {
			continue
		}
		n, ok := v.Numeric()
		if !ok {
			return nil, false
		}
		nums = append(nums, n)
	}
	return nums, true
}

func columnStats(nums []float64) model.ColumnStats {
	if len(nums) == 0 {
		return model.ColumnStats{}
	}

	sum, min, max := 0.0, nums[0], nums[0]
	for _, n := range nums {
		sum += n
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	mean := sum / float64(len(nums))

	return model.ColumnStats{
		Mean:   safeRound(mean),
		Median: safeRound(median(nums)),
		Min:    safeRound(min),
		Max:    safeRound(max),
		Std:    safeRound(sampleStd(nums, mean)),
	}
}

func median(nums []float64) float64 {
	sorted := append([]float64{}, nums...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// sampleStd is the n-1 standard deviation; undefined (NaN) for a single
// value, which safeRound then converts to null.
func sampleStd(nums []float64, mean float64) float64 {
	if len(nums) < 2 {
		return math.NaN()
	}
	var sq float64
	for _, n := range nums {
		d := n - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(nums)-1))
}

package domain

import (
	"fmt"
	"sort"
)

// YieldCurve maps a term in months to an annual yield. Terms between
// two known tenors are interpolated.
type YieldCurve struct {
	Rates map[int]float64
}

func (yc YieldCurve) GetRate(months int) (float64, error) {
	if v, ok := yc.Rates[months]; ok {
		return v, nil
	}

	keys := []int{}
	for k := range yc.Rates {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	if len(keys) == 0 {
		return 0, fmt.Errorf("yield curve has no tenors")
	}

	if months < keys[0] {
		return yc.Rates[keys[0]], nil
	}
	if months > keys[len(keys)-1] {
		return yc.Rates[keys[len(keys)-1]], nil
	}

	for i := 0; i < len(keys)-1; i++ {
		lo := keys[i]
		hi := keys[i+1]
		if months > lo && months < hi {
			frac := float64(months-lo) / float64(hi-lo)
			return yc.Rates[lo] + frac*(yc.Rates[hi]-yc.Rates[lo]), nil
		}
	}

	return 0, fmt.Errorf("unable to interpolate rate for %d months", months)
}

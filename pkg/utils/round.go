package utils

import (
	"fmt"
	"strconv"
)

func RoundToThreeDecimals(value float64) float64 {
	rounded, _ := strconv.ParseFloat(fmt.Sprintf("%.3f", value), 64)
	return rounded
}

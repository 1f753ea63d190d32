package service

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// convertAmount считает amount * rate без накопления ошибки float64
// (100 * 1.1 дает 110, а не 110.00000000000001)
// Результат может выйти за пределы float64 (+Inf), проверяется вызывающим кодом
func convertAmount(amount, rate float64) float64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).InexactFloat64()
}

// averageOf делит total на count, для count == 0 возвращает 0
func averageOf(total float64, count int64) float64 {
	if count == 0 {
		return 0
	}
	return decimal.NewFromFloat(total).Div(decimal.NewFromInt(count)).InexactFloat64()
}

// round2 округляет до 2 знаков после запятой
func round2(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// isFinite - false для +Inf, -Inf и NaN, decimal такие значения не принимает
func isFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Package formato formatea números y montos para la localización es-PY
// (separador de miles con punto; el guaraní no usa decimales).
package formato

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var impresora = message.NewPrinter(language.MustParse("es-PY"))

// Guaranies formatea un monto en guaraníes, ej. "Gs. 1.250.000".
func Guaranies(monto decimal.Decimal) string {
	f, _ := monto.Round(0).Float64()
	return impresora.Sprintf("Gs. %v", number.Decimal(f, number.MaxFractionDigits(0)))
}

// Cantidad formatea una cantidad de stock: entera sin decimales, fraccionada
// con dos, ej. "1.500" o "0,50".
func Cantidad(cantidad decimal.Decimal) string {
	f, _ := cantidad.Float64()
	if cantidad.IsInteger() {
		return impresora.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(0)))
	}
	return impresora.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

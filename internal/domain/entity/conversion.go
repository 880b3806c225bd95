package entity

import "github.com/shopspring/decimal"

// Tipos de conversión según el sentido de la operación.
const (
	ConversionCompra = "compra"
	ConversionVenta  = "venta"
)

// Conversion representa un multiplicador de empaque para un producto
// (ej. "caja = 12 unidades"). La caché trata la colección completa como una
// sola unidad: cualquier cambio estructural la invalida y recarga entera.
type Conversion struct {
	ConversionID       int             `json:"conversion_id"`
	ProductoID         int             `json:"producto_id"`
	NombrePresentacion string          `json:"nombre_presentacion"` // ej. "Caja x12"
	Factor             decimal.Decimal `json:"factor"`              // unidades base por presentación
	Tipo               string          `json:"tipo"`                // compra, venta
}

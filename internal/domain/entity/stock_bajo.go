package entity

import "github.com/shopspring/decimal"

// ProductoStockBajo representa un producto cuyo stock cayó por debajo del mínimo.
// Lo devuelve el endpoint de alertas; es de solo lectura para el cliente.
type ProductoStockBajo struct {
	ProductoID  int             `json:"producto_id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Stock       decimal.Decimal `json:"stock"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
}

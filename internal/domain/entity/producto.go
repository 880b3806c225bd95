package entity

import "github.com/shopspring/decimal"

// Estados posibles de un producto.
const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

// Producto representa un producto del inventario tal como lo devuelve el gateway.
// Los precios se manejan con decimal para evitar errores de coma flotante.
type Producto struct {
	ProductoID   int             `json:"producto_id"`
	Codigo       string          `json:"codigo"` // código de negocio único
	Nombre       string          `json:"nombre"`
	Estado       string          `json:"estado"` // activo, inactivo
	Stock        decimal.Decimal `json:"stock"`  // decimal: hay unidades fraccionables
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Categoria    *Categoria      `json:"categoria,omitempty"`
	Marca        *Marca          `json:"marca,omitempty"`
	Unidad       *Unidad         `json:"unidad,omitempty"`
}

// Activo indica si el producto está activo.
func (p Producto) Activo() bool {
	return p.Estado == EstadoActivo
}

package pdf_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doneduardo/catalogo-core/internal/domain/entity"
	"github.com/doneduardo/catalogo-core/internal/infrastructure/pdf"
)

func TestGenerarCatalogo_ProduceUnPDF(t *testing.T) {
	g := pdf.NewReporteGenerator()
	productos := []entity.Producto{
		{
			ProductoID: 1, Codigo: "YER-500", Nombre: "Yerba 500g",
			Estado: entity.EstadoActivo,
			Stock:  decimal.NewFromInt(24), PrecioCompra: decimal.NewFromInt(8500),
			PrecioVenta: decimal.NewFromInt(11000),
			Categoria:   &entity.Categoria{CategoriaID: 1, NombreCategoria: "Almacén"},
		},
		{
			ProductoID: 2, Codigo: "AZU-1K", Nombre: "Azúcar 1kg",
			Estado: entity.EstadoActivo,
			Stock:  decimal.NewFromFloat(7.5), PrecioCompra: decimal.NewFromInt(5200),
			PrecioVenta: decimal.NewFromInt(6800),
		},
	}

	contenido, err := g.GenerarCatalogo(productos)

	require.NoError(t, err)
	require.NotEmpty(t, contenido)
	assert.Equal(t, "%PDF", string(contenido[:4]), "el contenido debe ser un PDF")
}

func TestGenerarStockBajo_ProduceUnPDF(t *testing.T) {
	g := pdf.NewReporteGenerator()
	lista := []entity.ProductoStockBajo{
		{
			ProductoID: 1, Codigo: "YER-500", Nombre: "Yerba 500g",
			Stock: decimal.NewFromInt(2), StockMinimo: decimal.NewFromInt(10),
		},
	}

	contenido, err := g.GenerarStockBajo(lista)

	require.NoError(t, err)
	require.NotEmpty(t, contenido)
	assert.Equal(t, "%PDF", string(contenido[:4]))
}

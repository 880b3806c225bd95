// Package pdf genera los reportes imprimibles del módulo administrativo:
// listado de catálogo de productos y alerta de stock bajo.
//
// Layout de la página A4 del catálogo:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comercial Don Eduardo  │  Título + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Categoría | Stock | P.C | P.V   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de productos listados                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/doneduardo/catalogo-core/internal/domain/entity"
	"github.com/doneduardo/catalogo-core/pkg/formato"
)

const nombreComercio = "Comercial Don Eduardo"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 57}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlerta  = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReporteGenerator genera los reportes PDF usando Maroto v2.
type ReporteGenerator struct{}

// NewReporteGenerator construye el generador.
func NewReporteGenerator() *ReporteGenerator { return &ReporteGenerator{} }

// GenerarCatalogo genera el listado del catálogo de productos y devuelve los
// bytes del PDF. Los productos llegan de la caché, así que son solo activos.
func (g *ReporteGenerator) GenerarCatalogo(productos []entity.Producto) ([]byte, error) {
	m := maroto.New(configuracion("Catálogo de productos"))

	m.AddRows(encabezadoRow("CATÁLOGO DE PRODUCTOS"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(cabeceraCatalogoRow())
	for _, p := range productos {
		m.AddRows(filaCatalogoRow(p))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(pieRow(fmt.Sprintf("Total: %d productos activos", len(productos))))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar catálogo: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerarStockBajo genera el reporte de productos bajo stock mínimo.
func (g *ReporteGenerator) GenerarStockBajo(productos []entity.ProductoStockBajo) ([]byte, error) {
	m := maroto.New(configuracion("Alerta de stock bajo"))

	m.AddRows(encabezadoRow("PRODUCTOS BAJO STOCK MÍNIMO"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAlerta, Thickness: 0.5}))

	m.AddRows(cabeceraStockBajoRow())
	for _, p := range productos {
		m.AddRows(filaStockBajoRow(p))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorAlerta, Thickness: 0.3}))
	m.AddRows(pieRow(fmt.Sprintf("Total: %d productos por reponer", len(productos))))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar stock bajo: %w", err)
	}
	return doc.GetBytes(), nil
}

func configuracion(titulo string) *marotoentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		WithAuthor(nombreComercio, true).
		Build()
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// encabezadoRow: nombre del comercio (izq) y título + fecha (der).
func encabezadoRow(titulo string) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(16).Add(
		col.New(6).Add(
			text.New(nombreComercio, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func cabeceraCatalogoRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("P. Compra", 1, align.Right),
		h("P. Venta", 2, align.Right),
	)
}

func filaCatalogoRow(p entity.Producto) core.Row {
	categoria := "—"
	if p.Categoria != nil {
		categoria = p.Categoria.NombreCategoria
	}
	c := func(valor string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(valor, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		c(p.Codigo, 2, align.Left),
		c(p.Nombre, 4, align.Left),
		c(categoria, 2, align.Left),
		c(formato.Cantidad(p.Stock), 1, align.Right),
		c(formato.Guaranies(p.PrecioCompra), 1, align.Right),
		c(formato.Guaranies(p.PrecioVenta), 2, align.Right),
	)
}

func cabeceraStockBajoRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorAlerta, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Stock", 2, align.Right),
		h("Mínimo", 2, align.Right),
	)
}

func filaStockBajoRow(p entity.ProductoStockBajo) core.Row {
	c := func(valor string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(valor, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		c(p.Codigo, 2, align.Left),
		c(p.Nombre, 6, align.Left),
		c(formato.Cantidad(p.Stock), 2, align.Right),
		c(formato.Cantidad(p.StockMinimo), 2, align.Right),
	)
}

func pieRow(texto string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(texto, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorGray, Top: 2,
		})),
	)
}

package gateway

import (
	"context"
	"net/url"
	"strconv"

	"github.com/doneduardo/catalogo-core/internal/domain/entity"
)

// Criterios son los filtros reconocidos por los endpoints de colección.
// Los campos sin valor se omiten de la query string, no se envían vacíos.
type Criterios struct {
	Estado string // activo, inactivo
	Buscar string // búsqueda libre por nombre/código
	Skip   int
	Limit  int
}

// valores arma la query string omitiendo campos sin valor.
func (cr Criterios) valores() url.Values {
	q := url.Values{}
	if cr.Estado != "" {
		q.Set("estado", cr.Estado)
	}
	if cr.Buscar != "" {
		q.Set("buscar", cr.Buscar)
	}
	if cr.Skip > 0 {
		q.Set("skip", strconv.Itoa(cr.Skip))
	}
	if cr.Limit > 0 {
		q.Set("limit", strconv.Itoa(cr.Limit))
	}
	return q
}

// ListarCategorias obtiene las categorías según los criterios.
func (c *Cliente) ListarCategorias(ctx context.Context, cr Criterios) ([]entity.Categoria, error) {
	cuerpo, err := c.get(ctx, "/categorias", cr.valores())
	if err != nil {
		return nil, err
	}
	lista, _, err := decodificarColeccion[entity.Categoria](cuerpo)
	return lista, err
}

// ListarMarcas obtiene las marcas según los criterios.
func (c *Cliente) ListarMarcas(ctx context.Context, cr Criterios) ([]entity.Marca, error) {
	cuerpo, err := c.get(ctx, "/marcas", cr.valores())
	if err != nil {
		return nil, err
	}
	lista, _, err := decodificarColeccion[entity.Marca](cuerpo)
	return lista, err
}

// ListarUnidades obtiene las unidades de medida según los criterios.
func (c *Cliente) ListarUnidades(ctx context.Context, cr Criterios) ([]entity.Unidad, error) {
	cuerpo, err := c.get(ctx, "/unidades", cr.valores())
	if err != nil {
		return nil, err
	}
	lista, _, err := decodificarColeccion[entity.Unidad](cuerpo)
	return lista, err
}

// ListarProductos obtiene productos según los criterios. El filtrado es del
// lado del servidor; esta capa no filtra (el post-filtro de activos lo aplica
// la caché del catálogo al poblarse).
func (c *Cliente) ListarProductos(ctx context.Context, cr Criterios) ([]entity.Producto, error) {
	cuerpo, err := c.get(ctx, "/productos", cr.valores())
	if err != nil {
		return nil, err
	}
	lista, _, err := decodificarColeccion[entity.Producto](cuerpo)
	return lista, err
}

// ListarConversiones obtiene las conversiones de empaque según los criterios.
func (c *Cliente) ListarConversiones(ctx context.Context, cr Criterios) ([]entity.Conversion, error) {
	cuerpo, err := c.get(ctx, "/conversiones", cr.valores())
	if err != nil {
		return nil, err
	}
	lista, _, err := decodificarColeccion[entity.Conversion](cuerpo)
	return lista, err
}

// ListarStockBajo obtiene los productos por debajo del stock mínimo.
func (c *Cliente) ListarStockBajo(ctx context.Context) ([]entity.ProductoStockBajo, error) {
	cuerpo, err := c.get(ctx, "/productos/stock-bajo", nil)
	if err != nil {
		return nil, err
	}
	lista, _, err := decodificarColeccion[entity.ProductoStockBajo](cuerpo)
	return lista, err
}

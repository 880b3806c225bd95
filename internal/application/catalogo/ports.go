package catalogo

import (
	"context"

	"github.com/doneduardo/catalogo-core/internal/domain/entity"
	"github.com/doneduardo/catalogo-core/internal/infrastructure/gateway"
)

// Gateway define el puerto de datos remoto del catálogo (DIP).
// La implementación concreta es el cliente HTTP; para tests se inyecta un fake.
type Gateway interface {
	ListarCategorias(ctx context.Context, cr gateway.Criterios) ([]entity.Categoria, error)
	ListarMarcas(ctx context.Context, cr gateway.Criterios) ([]entity.Marca, error)
	ListarUnidades(ctx context.Context, cr gateway.Criterios) ([]entity.Unidad, error)
	ListarProductos(ctx context.Context, cr gateway.Criterios) ([]entity.Producto, error)
	ListarConversiones(ctx context.Context, cr gateway.Criterios) ([]entity.Conversion, error)
}

// Sesion define el puerto de autenticación que regula la carga inicial:
// mientras Cargando() es true no se hace ningún fetch, y sin Autenticado()
// tampoco.
type Sesion interface {
	Autenticado() bool
	Cargando() bool
}

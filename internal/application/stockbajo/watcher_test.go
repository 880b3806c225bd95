package stockbajo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doneduardo/catalogo-core/internal/application/stockbajo"
	"github.com/doneduardo/catalogo-core/internal/domain/entity"
	"github.com/doneduardo/catalogo-core/pkg/logger"
)

type gatewayFake struct {
	mu       sync.Mutex
	llamadas int
	demora   time.Duration
	lista    []entity.ProductoStockBajo
	fallo    error
}

func (g *gatewayFake) ListarStockBajo(context.Context) ([]entity.ProductoStockBajo, error) {
	if g.demora > 0 {
		time.Sleep(g.demora)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.llamadas++
	if g.fallo != nil {
		return nil, g.fallo
	}
	return g.lista, nil
}

func (g *gatewayFake) contar() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.llamadas
}

type sesionFake struct {
	autenticado bool
	cargando    bool
}

func (s *sesionFake) Autenticado() bool { return s.autenticado }
func (s *sesionFake) Cargando() bool    { return s.cargando }

func bajoMinimo(id int, nombre string) entity.ProductoStockBajo {
	return entity.ProductoStockBajo{
		ProductoID:  id,
		Nombre:      nombre,
		Stock:       decimal.NewFromInt(2),
		StockMinimo: decimal.NewFromInt(10),
	}
}

// Con sesión disponible, Sincronizar carga una sola vez y la visibilidad se
// deriva de "lista no vacía".
func TestSincronizar_CargaUnaVezYDerivaVisibilidad(t *testing.T) {
	gw := &gatewayFake{lista: []entity.ProductoStockBajo{bajoMinimo(1, "Yerba")}}
	w := stockbajo.NewWatcher(gw, &sesionFake{autenticado: true}, logger.Nop())
	ctx := context.Background()

	w.Sincronizar(ctx)
	w.Sincronizar(ctx)
	w.Sincronizar(ctx)

	assert.Equal(t, 1, gw.contar(), "sincronizaciones repetidas no deben refetchear")
	assert.True(t, w.Visible(), "con lista no vacía la notificación se muestra")
	require.Len(t, w.Productos(), 1)
}

// Sincronizaciones concurrentes comparten el fetch en vuelo en vez de
// duplicarlo.
func TestSincronizar_ConcurrenteUnSoloFetch(t *testing.T) {
	gw := &gatewayFake{
		demora: 30 * time.Millisecond,
		lista:  []entity.ProductoStockBajo{bajoMinimo(1, "Yerba")},
	}
	w := stockbajo.NewWatcher(gw, &sesionFake{autenticado: true}, logger.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Sincronizar(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, gw.contar(),
		"las sincronizaciones concurrentes deben compartir un único fetch")
	assert.True(t, w.Visible())
}

// Lista vacía: cargado pero sin notificación.
func TestSincronizar_ListaVacia(t *testing.T) {
	gw := &gatewayFake{}
	w := stockbajo.NewWatcher(gw, &sesionFake{autenticado: true}, logger.Nop())

	w.Sincronizar(context.Background())

	assert.False(t, w.Visible(), "sin productos bajo mínimo no hay notificación")
}

// Descartar oculta la notificación sin vaciar la lista; solo un Refrescar
// explícito la vuelve a mostrar.
func TestDescartar_OcultaSinVaciar(t *testing.T) {
	gw := &gatewayFake{lista: []entity.ProductoStockBajo{bajoMinimo(1, "Yerba")}}
	w := stockbajo.NewWatcher(gw, &sesionFake{autenticado: true}, logger.Nop())
	ctx := context.Background()
	w.Sincronizar(ctx)

	w.Descartar()

	assert.False(t, w.Visible(), "descartada no debe mostrarse")
	require.Len(t, w.Productos(), 1, "la lista subyacente no se vacía")

	// Sincronizar no re-muestra: la entrada ya está cargada.
	w.Sincronizar(ctx)
	assert.False(t, w.Visible())

	// Refrescar sí: refetch explícito y la visibilidad se re-arma.
	w.Refrescar(ctx)
	assert.Equal(t, 2, gw.contar())
	assert.True(t, w.Visible(), "tras Refrescar la notificación vuelve a mostrarse")
}

// Con login en curso no se hace nada; al quedar sin sesión se limpia la lista
// y se oculta la notificación.
func TestSincronizar_CompuertaDeSesion(t *testing.T) {
	gw := &gatewayFake{lista: []entity.ProductoStockBajo{bajoMinimo(1, "Yerba")}}
	sesion := &sesionFake{cargando: true}
	w := stockbajo.NewWatcher(gw, sesion, logger.Nop())
	ctx := context.Background()

	w.Sincronizar(ctx)
	assert.Zero(t, gw.contar(), "con login en curso no debe haber fetch")

	sesion.cargando = false
	sesion.autenticado = true
	w.Sincronizar(ctx)
	require.True(t, w.Visible())

	// La sesión se cae: se limpia todo.
	sesion.autenticado = false
	w.Sincronizar(ctx)
	assert.False(t, w.Visible())
	assert.Empty(t, w.Productos(), "sin sesión la lista se descarta")

	// Al volver la sesión se recarga (la entrada quedó sin cargar).
	sesion.autenticado = true
	w.Sincronizar(ctx)
	assert.Equal(t, 2, gw.contar())
	assert.True(t, w.Visible())
}

// Un fetch fallido no marca cargado: la próxima sincronización reintenta.
func TestSincronizar_FalloReintentable(t *testing.T) {
	gw := &gatewayFake{
		lista: []entity.ProductoStockBajo{bajoMinimo(1, "Yerba")},
		fallo: errors.New("conexión rechazada"),
	}
	w := stockbajo.NewWatcher(gw, &sesionFake{autenticado: true}, logger.Nop())
	ctx := context.Background()

	assert.NotPanics(t, func() { w.Sincronizar(ctx) })
	assert.False(t, w.Visible())

	gw.mu.Lock()
	gw.fallo = nil
	gw.mu.Unlock()
	w.Sincronizar(ctx)

	assert.Equal(t, 2, gw.contar(), "debe reintentar tras el fallo")
	assert.True(t, w.Visible())
}

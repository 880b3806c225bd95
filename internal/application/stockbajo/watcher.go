// Package stockbajo mantiene la alerta de productos por debajo del stock
// mínimo. A diferencia de la caché de catálogo, es pull-only: sin
// notificadores y sin bus de eventos; se refresca solo por invocación
// explícita.
package stockbajo

import (
	"context"
	"slices"
	"sync"

	"github.com/doneduardo/catalogo-core/internal/domain/entity"
	"github.com/doneduardo/catalogo-core/pkg/logger"
)

// Gateway define el puerto de datos de la alerta (DIP).
type Gateway interface {
	ListarStockBajo(ctx context.Context) ([]entity.ProductoStockBajo, error)
}

// Sesion es la compuerta de autenticación de la carga.
type Sesion interface {
	Autenticado() bool
	Cargando() bool
}

// Watcher carga una vez la lista de stock bajo al haber sesión, deriva la
// visibilidad de la notificación de "lista no vacía" y permite descartarla
// sin vaciar la lista (volver a mostrarla exige un Refrescar explícito).
type Watcher struct {
	gw     Gateway
	sesion Sesion // nil = sin compuerta
	log    *logger.Logger

	mu        sync.RWMutex
	productos []entity.ProductoStockBajo
	cargado   bool
	oculto    bool
	enVuelo   bool
}

// NewWatcher construye el watcher sin cargar.
func NewWatcher(gw Gateway, sesion Sesion, log *logger.Logger) *Watcher {
	return &Watcher{gw: gw, sesion: sesion, log: log.Componente("stockbajo")}
}

// Sincronizar alinea el watcher con el estado de la sesión: con login en
// curso no hace nada; sin sesión limpia la lista y oculta la notificación;
// con sesión y sin carga previa hace el fetch inicial.
func (w *Watcher) Sincronizar(ctx context.Context) {
	if w.sesion != nil {
		if w.sesion.Cargando() {
			return
		}
		if !w.sesion.Autenticado() {
			w.mu.Lock()
			w.productos = nil
			w.cargado = false
			w.oculto = false
			w.mu.Unlock()
			return
		}
	}
	w.mu.RLock()
	cargado := w.cargado
	w.mu.RUnlock()
	if cargado {
		return
	}
	w.cargar(ctx)
}

// Refrescar vuelve a consultar el gateway y re-arma la visibilidad
// (un descarte previo deja de aplicar).
func (w *Watcher) Refrescar(ctx context.Context) {
	w.mu.Lock()
	w.oculto = false
	w.mu.Unlock()
	w.cargar(ctx)
}

func (w *Watcher) cargar(ctx context.Context) {
	w.mu.Lock()
	if w.enVuelo {
		// Ya hay un fetch en curso; dos Sincronizar concurrentes se
		// resuelven con una sola petición, como en la caché de catálogo.
		w.mu.Unlock()
		return
	}
	w.enVuelo = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.enVuelo = false
		w.mu.Unlock()
	}()

	lista, err := w.gw.ListarStockBajo(ctx)
	if err != nil {
		// Igual que la caché de catálogo: el fallo no se propaga y la
		// próxima sincronización reintenta.
		w.log.Warn().Err(err).Msg("fallo al cargar stock bajo")
		return
	}
	w.mu.Lock()
	w.productos = lista
	w.cargado = true
	w.mu.Unlock()
	w.log.Debug().Int("productos", len(lista)).Msg("stock bajo cargado")
}

// Descartar oculta la notificación sin vaciar la lista subyacente.
func (w *Watcher) Descartar() {
	w.mu.Lock()
	w.oculto = true
	w.mu.Unlock()
}

// Visible indica si debe mostrarse la notificación: hay productos bajo
// mínimo y no fue descartada.
func (w *Watcher) Visible() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.productos) > 0 && !w.oculto
}

// Productos devuelve una copia de la lista cargada.
func (w *Watcher) Productos() []entity.ProductoStockBajo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.productos)
}

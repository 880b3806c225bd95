// Package catalogo implementa la caché de catálogo compartida del cliente:
// colecciones de categorías, marcas, unidades, productos y conversiones con
// accesores ensure-loaded (cargar una vez, reusar después), notificadores de
// mutación que parchean la caché y publican eventos, y la invalidación
// forzada de conversiones.
//
// Invariante del producto: la colección cacheada contiene únicamente
// productos con estado activo; los inactivos se excluyen al poblar la caché,
// no al renderizar. Todo consumidor puede contar con esto.
package catalogo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/doneduardo/catalogo-core/internal/domain/entity"
	"github.com/doneduardo/catalogo-core/internal/events"
	"github.com/doneduardo/catalogo-core/internal/infrastructure/gateway"
	"github.com/doneduardo/catalogo-core/pkg/logger"
)

// Entidad identifica un tipo de entidad: la granularidad de caché e invalidación.
type Entidad string

// Tipos de entidad cacheados.
const (
	EntidadCategorias   Entidad = "categorias"
	EntidadMarcas       Entidad = "marcas"
	EntidadUnidades     Entidad = "unidades"
	EntidadProductos    Entidad = "productos"
	EntidadConversiones Entidad = "conversiones"
)

// Topes de página por tipo de entidad: generosos a propósito para traer todo
// el catálogo activo en una sola página (este comercio no supera esos tamaños).
const (
	limiteCategorias   = 100
	limiteMarcas       = 100
	limiteUnidades     = 100
	limiteConversiones = 500
	limiteProductos    = 1000
)

// entradaCache es el estado de caché de un tipo de entidad completo.
// cargado=true implica al menos un fetch exitoso; marca es solo observabilidad,
// no hay expiración por TTL (la invalidación es siempre explícita).
type entradaCache struct {
	cargado bool
	marca   time.Time
}

// Store es la caché de catálogo. Se construye una vez por ciclo de vida de la
// aplicación y es segura para uso concurrente. Las colecciones y banderas son
// privadas; la superficie pública son los accesores, notificadores y el
// invalidador.
type Store struct {
	gw     Gateway
	sesion Sesion // nil = sin compuerta de autenticación
	bus    *events.Bus
	log    *logger.Logger

	mu           sync.RWMutex
	categorias   []entity.Categoria
	marcas       []entity.Marca
	unidades     []entity.Unidad
	productos    []entity.Producto
	conversiones []entity.Conversion
	entradas     map[Entidad]entradaCache
	cargas       int    // fetches en vuelo (indicador compartido de carga)
	ultimoError  string // slot compartido de error legible

	vuelo singleflight.Group // deduplica fetches concurrentes por entidad
}

// NewStore construye la caché vacía. sesion puede ser nil para consumidores
// sin autenticación (tests, herramientas internas).
func NewStore(gw Gateway, sesion Sesion, bus *events.Bus, log *logger.Logger) *Store {
	return &Store{
		gw:       gw,
		sesion:   sesion,
		bus:      bus,
		log:      log.Componente("catalogo"),
		entradas: make(map[Entidad]entradaCache),
	}
}

// ── Accesores ensure-loaded ───────────────────────────────────────────────────

// EnsureCategorias carga las categorías si aún no están cargadas. Idempotente:
// con la entrada cargada retorna de inmediato sin tocar la red. Los fallos no
// se propagan; quedan en Error() y la entrada sin cargar para reintentar.
func (s *Store) EnsureCategorias(ctx context.Context) {
	s.ensure(ctx, EntidadCategorias, func(ctx context.Context) error {
		lista, err := s.gw.ListarCategorias(ctx, gateway.Criterios{Limit: limiteCategorias})
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.categorias = lista
		s.mu.Unlock()
		return nil
	})
}

// EnsureMarcas carga las marcas si aún no están cargadas.
func (s *Store) EnsureMarcas(ctx context.Context) {
	s.ensure(ctx, EntidadMarcas, func(ctx context.Context) error {
		lista, err := s.gw.ListarMarcas(ctx, gateway.Criterios{Limit: limiteMarcas})
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.marcas = lista
		s.mu.Unlock()
		return nil
	})
}

// EnsureUnidades carga las unidades de medida si aún no están cargadas.
func (s *Store) EnsureUnidades(ctx context.Context) {
	s.ensure(ctx, EntidadUnidades, func(ctx context.Context) error {
		lista, err := s.gw.ListarUnidades(ctx, gateway.Criterios{Limit: limiteUnidades})
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.unidades = lista
		s.mu.Unlock()
		return nil
	})
}

// EnsureProductos carga los productos si aún no están cargados, aplicando el
// invariante de la caché: solo entran productos activos, filtrados al poblar.
func (s *Store) EnsureProductos(ctx context.Context) {
	s.ensure(ctx, EntidadProductos, func(ctx context.Context) error {
		lista, err := s.gw.ListarProductos(ctx, gateway.Criterios{
			Estado: entity.EstadoActivo,
			Limit:  limiteProductos,
		})
		if err != nil {
			return err
		}
		activos := make([]entity.Producto, 0, len(lista))
		for _, p := range lista {
			if p.Activo() {
				activos = append(activos, p)
			}
		}
		s.mu.Lock()
		s.productos = activos
		s.mu.Unlock()
		return nil
	})
}

// EnsureConversiones carga las conversiones si aún no están cargadas.
func (s *Store) EnsureConversiones(ctx context.Context) {
	s.ensure(ctx, EntidadConversiones, s.cargarConversiones)
}

func (s *Store) cargarConversiones(ctx context.Context) error {
	lista, err := s.gw.ListarConversiones(ctx, gateway.Criterios{Limit: limiteConversiones})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.conversiones = lista
	s.mu.Unlock()
	return nil
}

// ensure es el camino común de los accesores: compuerta de sesión, chequeo de
// entrada cargada y fetch deduplicado. Llamadas concurrentes sobre la misma
// entidad comparten un único fetch en vuelo (singleflight) en lugar de emitir
// peticiones duplicadas.
func (s *Store) ensure(ctx context.Context, ent Entidad, cargar func(context.Context) error) {
	if !s.puedeCargar() {
		return
	}
	if s.Cargada(ent) {
		return
	}
	s.vuelo.Do(string(ent), func() (any, error) {
		// Otro llamador pudo completar la carga mientras esperábamos el turno.
		if s.Cargada(ent) {
			return nil, nil
		}
		s.iniciarCarga()
		defer s.terminarCarga()

		if err := cargar(ctx); err != nil {
			s.registrarError(ent, err)
			return nil, nil // no se propaga: la entrada queda sin cargar y se reintenta
		}
		s.marcarCargada(ent)
		return nil, nil
	})
}

// ── Notificadores de mutación ─────────────────────────────────────────────────
//
// Se invocan después de que la mutación ya tuvo éxito contra el gateway: son
// un paso de parcheo de caché + difusión, nunca tocan la red.

// NotificarProductoCreado agrega el producto a la caché y difunde el evento.
// No se chequea duplicado: el llamador acaba de recibirlo de una creación
// exitosa y no puede estar ya presente.
func (s *Store) NotificarProductoCreado(p entity.Producto) {
	s.mu.Lock()
	s.productos = append(s.productos, p)
	s.mu.Unlock()
	s.bus.Publicar(events.EventoProductoCreado, p)
}

// NotificarProductoActualizado reemplaza el producto con el mismo ProductoID.
// Sin coincidencia, la caché queda intacta (solo se parchea lo ya conocido);
// el evento se difunde igual.
func (s *Store) NotificarProductoActualizado(p entity.Producto) {
	s.mu.Lock()
	for i := range s.productos {
		if s.productos[i].ProductoID == p.ProductoID {
			s.productos[i] = p
			break
		}
	}
	s.mu.Unlock()
	s.bus.Publicar(events.EventoProductoActualizado, p)
}

// NotificarProductoEliminado quita el producto con ese ID y difunde el evento
// llevando el ID como payload.
func (s *Store) NotificarProductoEliminado(productoID int) {
	s.mu.Lock()
	s.productos = slices.DeleteFunc(s.productos, func(p entity.Producto) bool {
		return p.ProductoID == productoID
	})
	s.mu.Unlock()
	s.bus.Publicar(events.EventoProductoEliminado, productoID)
}

// NotificarCategoriaCreada agrega la categoría y difunde el evento.
func (s *Store) NotificarCategoriaCreada(c entity.Categoria) {
	s.mu.Lock()
	s.categorias = append(s.categorias, c)
	s.mu.Unlock()
	s.bus.Publicar(events.EventoCategoriaCreada, c)
}

// NotificarCategoriaActualizada reemplaza la categoría con el mismo ID; sin
// coincidencia no toca la caché. El evento se difunde igual.
func (s *Store) NotificarCategoriaActualizada(c entity.Categoria) {
	s.mu.Lock()
	for i := range s.categorias {
		if s.categorias[i].CategoriaID == c.CategoriaID {
			s.categorias[i] = c
			break
		}
	}
	s.mu.Unlock()
	s.bus.Publicar(events.EventoCategoriaActualizada, c)
}

// NotificarMarcaCreada agrega la marca y difunde el evento.
func (s *Store) NotificarMarcaCreada(m entity.Marca) {
	s.mu.Lock()
	s.marcas = append(s.marcas, m)
	s.mu.Unlock()
	s.bus.Publicar(events.EventoMarcaCreada, m)
}

// NotificarMarcaActualizada reemplaza la marca con el mismo ID; sin
// coincidencia no toca la caché. El evento se difunde igual.
func (s *Store) NotificarMarcaActualizada(m entity.Marca) {
	s.mu.Lock()
	for i := range s.marcas {
		if s.marcas[i].MarcaID == m.MarcaID {
			s.marcas[i] = m
			break
		}
	}
	s.mu.Unlock()
	s.bus.Publicar(events.EventoMarcaActualizada, m)
}

// ── Invalidación ──────────────────────────────────────────────────────────────

// InvalidarConversiones descarta la caché de conversiones y la recarga entera.
// Se usa cuando una edición en otra entidad (ej. el empaque de un producto)
// puede cambiar las conversiones de formas difíciles de parchear: recargar
// todo y difundir el reemplazo completo es la simplificación elegida frente a
// calcular un diff. Secuencia: cargado=false → colección vacía → fetch →
// colección nueva → cargado=true → un único evento con la colección completa.
// Si el fetch falla, la entrada queda sin cargar y no se difunde nada.
func (s *Store) InvalidarConversiones(ctx context.Context) {
	if !s.puedeCargar() {
		return
	}
	s.mu.Lock()
	s.entradas[EntidadConversiones] = entradaCache{}
	s.conversiones = nil
	s.mu.Unlock()

	// Un fetch de Ensure en vuelo quedó obsoleto: trae el estado previo a la
	// invalidación. Se descarta ese vuelo para que la recarga ejecute un fetch
	// propio en lugar de unirse al viejo; los Ensure posteriores sí se unen a
	// la recarga.
	s.vuelo.Forget(string(EntidadConversiones))

	s.vuelo.Do(string(EntidadConversiones), func() (any, error) {
		s.iniciarCarga()
		defer s.terminarCarga()

		if err := s.cargarConversiones(ctx); err != nil {
			s.registrarError(EntidadConversiones, err)
			return nil, nil
		}
		s.marcarCargada(EntidadConversiones)
		s.bus.Publicar(events.EventoConversionesActualizadas, s.Conversiones())
		return nil, nil
	})
}

// ── Lecturas ──────────────────────────────────────────────────────────────────
//
// Las lecturas devuelven copias: la caché solo se muta por los accesores,
// notificadores y el invalidador, nunca desde afuera.

// Categorias devuelve una copia de la colección cacheada.
func (s *Store) Categorias() []entity.Categoria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categorias)
}

// Marcas devuelve una copia de la colección cacheada.
func (s *Store) Marcas() []entity.Marca {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.marcas)
}

// Unidades devuelve una copia de la colección cacheada.
func (s *Store) Unidades() []entity.Unidad {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.unidades)
}

// Productos devuelve una copia de la colección cacheada (solo activos).
// La copia es profunda: las referencias anidadas a Categoria/Marca/Unidad
// también se clonan, para que mutar lo devuelto nunca alcance la caché.
func (s *Store) Productos() []entity.Producto {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copia := make([]entity.Producto, len(s.productos))
	for i, p := range s.productos {
		copia[i] = clonarProducto(p)
	}
	return copia
}

func clonarProducto(p entity.Producto) entity.Producto {
	if p.Categoria != nil {
		c := *p.Categoria
		p.Categoria = &c
	}
	if p.Marca != nil {
		m := *p.Marca
		p.Marca = &m
	}
	if p.Unidad != nil {
		u := *p.Unidad
		p.Unidad = &u
	}
	return p
}

// Conversiones devuelve una copia de la colección cacheada.
func (s *Store) Conversiones() []entity.Conversion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.conversiones)
}

// Cargada indica si la entidad ya tuvo al menos un fetch exitoso.
func (s *Store) Cargada(ent Entidad) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entradas[ent].cargado
}

// UltimaCarga devuelve el instante de la última carga exitosa de la entidad
// (cero si nunca cargó). Solo observabilidad: no hay expiración automática.
func (s *Store) UltimaCarga(ent Entidad) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entradas[ent].marca
}

// Cargando indica si hay algún fetch de catálogo en vuelo.
func (s *Store) Cargando() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cargas > 0
}

// Error devuelve el último mensaje de error de carga (vacío si la última
// carga fue exitosa). Los fallos de red nunca se propagan como error a los
// consumidores; este slot es la única vía para reaccionar a ellos.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ultimoError
}

// ── Internos ──────────────────────────────────────────────────────────────────

func (s *Store) puedeCargar() bool {
	if s.sesion == nil {
		return true
	}
	return !s.sesion.Cargando() && s.sesion.Autenticado()
}

func (s *Store) iniciarCarga() {
	s.mu.Lock()
	s.cargas++
	s.mu.Unlock()
}

func (s *Store) terminarCarga() {
	s.mu.Lock()
	s.cargas--
	s.mu.Unlock()
}

func (s *Store) marcarCargada(ent Entidad) {
	s.mu.Lock()
	s.entradas[ent] = entradaCache{cargado: true, marca: time.Now()}
	s.ultimoError = ""
	s.mu.Unlock()
}

func (s *Store) registrarError(ent Entidad, err error) {
	s.mu.Lock()
	s.ultimoError = fmt.Sprintf("no se pudo cargar %s: %v", ent, err)
	s.mu.Unlock()
	s.log.Warn().Err(err).Str("entidad", string(ent)).Msg("fallo al cargar catálogo")
}

// Package events implementa el bus de eventos en proceso que propaga las
// mutaciones del catálogo entre módulos independientes de la aplicación.
//
// Es un bus síncrono de tipo fire-and-forget: Publicar invoca a todos los
// suscriptores vigentes en orden de registro antes de retornar, y no hay
// replay — un suscriptor tardío no recibe el historial.
package events

import (
	"sync"

	"github.com/doneduardo/catalogo-core/pkg/logger"
)

// Evento es el nombre de un evento de dominio.
type Evento string

// Eventos de mutación del catálogo.
const (
	EventoProductoCreado       Evento = "producto:creado"
	EventoProductoActualizado  Evento = "producto:actualizado"
	EventoProductoEliminado    Evento = "producto:eliminado"
	EventoCategoriaCreada      Evento = "categoria:creada"
	EventoCategoriaActualizada Evento = "categoria:actualizada"
	EventoMarcaCreada          Evento = "marca:creada"
	EventoMarcaActualizada     Evento = "marca:actualizada"
	// EventoConversionesActualizadas lleva la colección completa recargada,
	// nunca un diff parcial.
	EventoConversionesActualizadas Evento = "conversiones:actualizadas"
)

// Handler recibe el payload del evento. El tipo concreto depende del evento:
// la entidad creada/actualizada, el ID eliminado o la colección completa.
type Handler func(payload any)

// Suscripcion es el token devuelto por Suscribir; identifica exactamente
// ese registro para poder cancelarlo.
type Suscripcion struct {
	evento Evento
	id     uint64
}

type registro struct {
	id uint64
	fn Handler
}

// Bus es el publicador/suscriptor en proceso. Seguro para uso concurrente.
type Bus struct {
	mu       sync.Mutex
	proximo  uint64
	registry map[Evento][]registro
	log      *logger.Logger
}

// NewBus construye un bus vacío.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		registry: make(map[Evento][]registro),
		log:      log.Componente("events"),
	}
}

// Suscribir registra el handler para el evento y devuelve el token de cancelación.
// Los handlers de un mismo evento se invocan en orden de registro.
func (b *Bus) Suscribir(evento Evento, h Handler) *Suscripcion {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.proximo++
	b.registry[evento] = append(b.registry[evento], registro{id: b.proximo, fn: h})
	return &Suscripcion{evento: evento, id: b.proximo}
}

// Cancelar elimina exactamente el registro identificado por la suscripción.
// Si el evento queda sin handlers se descarta su entrada para no acumular
// claves muertas. Cancelar dos veces la misma suscripción es inocuo.
func (b *Bus) Cancelar(s *Suscripcion) {
	if s == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	regs := b.registry[s.evento]
	for i, r := range regs {
		if r.id == s.id {
			regs = append(regs[:i], regs[i+1:]...)
			break
		}
	}
	if len(regs) == 0 {
		delete(b.registry, s.evento)
		return
	}
	b.registry[s.evento] = regs
}

// Publicar invoca sincrónicamente a cada handler vigente del evento, en orden
// de registro. Un pánico en un handler se registra y no impide la ejecución de
// los siguientes. Publicar sin suscriptores no hace nada.
func (b *Bus) Publicar(evento Evento, payload any) {
	b.mu.Lock()
	regs := make([]registro, len(b.registry[evento]))
	copy(regs, b.registry[evento])
	b.mu.Unlock()

	for _, r := range regs {
		b.invocar(evento, r, payload)
	}
}

func (b *Bus) invocar(evento Evento, r registro, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			b.log.Error().
				Str("evento", string(evento)).
				Uint64("suscripcion", r.id).
				Interface("panico", rec).
				Msg("handler de evento falló; se continúa con los siguientes")
		}
	}()
	r.fn(payload)
}

// Limpiar descarta todos los registros. Solo para teardown y tests.
func (b *Bus) Limpiar() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registry = make(map[Evento][]registro)
}

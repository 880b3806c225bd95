// Package gateway implementa el cliente HTTP del API REST remoto
// ("Comercial Don Eduardo"). Es un adaptador delgado: arma la petición,
// normaliza la forma de la respuesta y traduce estados HTTP a errores de
// dominio. No reintenta ni hace backoff; esa política no existe en este core.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doneduardo/catalogo-core/internal/domain"
	"github.com/doneduardo/catalogo-core/pkg/logger"
)

// Config opciones del cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration // 0 = 30s
}

// Cliente es el cliente del gateway. Seguro para uso concurrente; el token de
// sesión se fija después del login y se adjunta como Bearer a cada petición.
type Cliente struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string

	log *logger.Logger
}

// NewCliente construye el cliente del gateway.
func NewCliente(cfg Config, log *logger.Logger) *Cliente {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Cliente{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Componente("gateway"),
	}
}

// EstablecerToken fija el token Bearer para las siguientes peticiones.
func (c *Cliente) EstablecerToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Cliente) tokenActual() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// get ejecuta un GET contra el gateway y devuelve el cuerpo crudo.
func (c *Cliente) get(ctx context.Context, ruta string, query url.Values) ([]byte, error) {
	destino := c.baseURL + ruta
	if len(query) > 0 {
		destino += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, destino, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: crear request: %w", err)
	}
	return c.ejecutar(req)
}

// postJSON ejecuta un POST con cuerpo JSON y devuelve el cuerpo crudo.
func (c *Cliente) postJSON(ctx context.Context, ruta string, cuerpo any) ([]byte, error) {
	payload, err := json.Marshal(cuerpo)
	if err != nil {
		return nil, fmt.Errorf("gateway: serializar cuerpo: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ruta,
		bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gateway: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.ejecutar(req)
}

func (c *Cliente) ejecutar(req *http.Request) ([]byte, error) {
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if tok := c.tokenActual(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	inicio := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, fmt.Errorf("gateway: timeout o cancelación: %w", req.Context().Err())
		}
		return nil, fmt.Errorf("gateway: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20)) // max 4 MB
	if err != nil {
		return nil, fmt.Errorf("gateway: leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("metodo", req.Method).
		Str("ruta", req.URL.Path).
		Int("estado", resp.StatusCode).
		Str("request_id", reqID).
		Dur("duracion", time.Since(inicio)).
		Msg("petición al gateway")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorDeEstado(resp.StatusCode, rawBody)
	}
	return rawBody, nil
}

// errorDeEstado traduce un estado HTTP no exitoso a un error de dominio,
// conservando el detalle que haya enviado el gateway.
func (c *Cliente) errorDeEstado(estado int, cuerpo []byte) error {
	detalle := extraerDetalle(cuerpo)
	switch {
	case estado == http.StatusUnauthorized:
		return fmt.Errorf("gateway: HTTP 401 (%s): %w", detalle, domain.ErrNoAutenticado)
	case estado == http.StatusNotFound:
		return fmt.Errorf("gateway: HTTP 404 (%s): %w", detalle, domain.ErrRecursoNoEncontrado)
	case estado >= 500:
		return fmt.Errorf("gateway: HTTP %d (%s): %w", estado, detalle, domain.ErrGatewayNoDisponible)
	default:
		return fmt.Errorf("gateway: HTTP %d: %s", estado, detalle)
	}
}

// extraerDetalle busca el campo "detail" del cuerpo de error; si no puede,
// devuelve el cuerpo crudo recortado.
func extraerDetalle(cuerpo []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(cuerpo, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	const max = 200
	s := string(bytes.TrimSpace(cuerpo))
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// coleccion es la forma paginada {"items": [...], "total": N} del gateway.
type coleccion[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// decodificarColeccion normaliza las dos formas de respuesta del gateway
// (objeto paginado o array plano) a una colección.
func decodificarColeccion[T any](cuerpo []byte) ([]T, int, error) {
	recortado := bytes.TrimSpace(cuerpo)
	if len(recortado) > 0 && recortado[0] == '[' {
		var lista []T
		if err := json.Unmarshal(recortado, &lista); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", domain.ErrRespuestaInvalida, err)
		}
		return lista, len(lista), nil
	}
	var col coleccion[T]
	if err := json.Unmarshal(recortado, &col); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrRespuestaInvalida, err)
	}
	return col.Items, col.Total, nil
}

// Package auth mantiene la sesión del cliente contra el gateway: login,
// token emitido y el par {autenticado, cargando} que regula la carga inicial
// de las cachés.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/doneduardo/catalogo-core/pkg/logger"
)

// Gateway define el puerto de salida de la sesión (DIP).
type Gateway interface {
	// IniciarSesion autentica y devuelve el access token emitido.
	IniciarSesion(ctx context.Context, usuario, clave string) (string, error)
	// EstablecerToken fija el Bearer para las siguientes peticiones.
	EstablecerToken(token string)
}

// Sesion guarda el estado de autenticación del cliente. Segura para uso
// concurrente. El token es opaco para este cliente: si es un JWT se lee su
// expiración (sin verificar firma — el secreto vive en el servidor); si no,
// se considera vigente hasta Salir.
type Sesion struct {
	gw  Gateway
	log *logger.Logger

	mu       sync.RWMutex
	usuario  string
	token    string
	expira   time.Time // cero = sin expiración conocida
	cargando bool
}

// NewSesion construye una sesión sin autenticar.
func NewSesion(gw Gateway, log *logger.Logger) *Sesion {
	return &Sesion{gw: gw, log: log.Componente("auth")}
}

// Entrar autentica contra el gateway y deja la sesión lista para operar.
// Mientras el login está en curso, Cargando() es true y las cachés no cargan.
func (s *Sesion) Entrar(ctx context.Context, usuario, clave string) error {
	s.mu.Lock()
	s.cargando = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.cargando = false
		s.mu.Unlock()
	}()

	token, err := s.gw.IniciarSesion(ctx, usuario, clave)
	if err != nil {
		s.log.Warn().Err(err).Str("usuario", usuario).Msg("login fallido")
		return err
	}

	expira := leerExpiracion(token)
	s.mu.Lock()
	s.usuario = usuario
	s.token = token
	s.expira = expira
	s.mu.Unlock()
	s.gw.EstablecerToken(token)

	ev := s.log.Info().Str("usuario", usuario)
	if !expira.IsZero() {
		ev = ev.Time("expira", expira)
	}
	ev.Msg("sesión iniciada")
	return nil
}

// Salir descarta la sesión y el token del gateway.
func (s *Sesion) Salir() {
	s.mu.Lock()
	s.usuario = ""
	s.token = ""
	s.expira = time.Time{}
	s.mu.Unlock()
	s.gw.EstablecerToken("")
	s.log.Info().Msg("sesión cerrada")
}

// Autenticado indica si hay un token vigente.
func (s *Sesion) Autenticado() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	return s.expira.IsZero() || time.Now().Before(s.expira)
}

// Cargando indica si hay un login en curso.
func (s *Sesion) Cargando() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cargando
}

// Usuario devuelve el usuario de la sesión vigente (vacío si no hay).
func (s *Sesion) Usuario() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usuario
}

// leerExpiracion extrae el claim exp de un JWT sin verificar la firma.
// Devuelve cero si el token no es un JWT o no trae exp.
func leerExpiracion(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNoAutenticado         = errors.New("sesión no autenticada")
	ErrSesionExpirada        = errors.New("la sesión expiró")
	ErrCredencialesInvalidas = errors.New("usuario o contraseña incorrectos")
	ErrRecursoNoEncontrado   = errors.New("recurso no encontrado")
	ErrGatewayNoDisponible   = errors.New("el servicio remoto no está disponible")
	ErrRespuestaInvalida     = errors.New("respuesta del gateway con formato inesperado")
)

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrNoData la consulta no devolvió filas utilizables; no es un fallo.
	ErrNoData = errors.New("no hay datos para la selección")
	// ErrCancelled el build fue detenido por señal cooperativa de cancelación.
	ErrCancelled = errors.New("generación de reporte cancelada")
	// ErrUpstream la plataforma remota respondió con un estado no exitoso.
	ErrUpstream = errors.New("plataforma de inventario no disponible")
)

// UpstreamError detalla una respuesta no exitosa de la plataforma remota.
// Envuelve ErrUpstream para que los handlers puedan clasificar con errors.Is.
type UpstreamError struct {
	Endpoint string
	Status   int
	Body     string // fragmento del cuerpo de la respuesta, para diagnóstico
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: estado %d: %s", e.Endpoint, e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

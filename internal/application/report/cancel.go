package report

import (
	"sync"

	"github.com/jhoicas/rentabilidad-api/internal/domain"
)

// CancellationToken bandera compartida de cancelación cooperativa.
// Un build la consulta en puntos de control definidos (antes de cada página
// y de cada fila); la señal externa de stop la enciende. No es preemptiva:
// último escritor gana, sin cola de cancelaciones pendientes.
type CancellationToken struct {
	mu        sync.Mutex
	cancelled bool
	buildID   string
}

// NewCancellationToken crea el token compartido entre el transporte y los builds.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{}
}

// BeginBuild marca el inicio de un build: resetea la bandera y registra el id
// del build vigente en una sola transición bajo el lock, de modo que un build
// nuevo nunca arranque con una cancelación vieja ya consumida.
func (t *CancellationToken) BeginBuild(buildID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = false
	t.buildID = buildID
}

// Cancel enciende la bandera. El build en curso la observará en su próximo
// punto de control; la bandera no se limpia sola, lo hace el siguiente BeginBuild.
func (t *CancellationToken) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = true
}

// Check devuelve domain.ErrCancelled si la bandera está encendida.
func (t *CancellationToken) Check() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return domain.ErrCancelled
	}
	return nil
}

// BuildID devuelve el id del build vigente (para logs).
func (t *CancellationToken) BuildID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buildID
}

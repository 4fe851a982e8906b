package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rentabilidad-api/internal/application/report"
	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
)

// TestResolveIdentity cubre los tres casos del marcador de referencia:
// modificación, producto y referencia irreconocible.
func TestResolveIdentity(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		wantKind string
		wantID   string
		wantOK   bool
	}{
		{
			name:     "modificación",
			href:     "https://sklad/api/entity/variant/abc-123",
			wantKind: entity.ItemKindVariant,
			wantID:   "abc-123",
			wantOK:   true,
		},
		{
			name:     "producto",
			href:     "https://sklad/api/entity/product/def-456",
			wantKind: entity.ItemKindProduct,
			wantID:   "def-456",
			wantOK:   true,
		},
		{
			name:     "producto con query",
			href:     "https://sklad/api/entity/product/def-456?expand=images",
			wantKind: entity.ItemKindProduct,
			wantID:   "def-456",
			wantOK:   true,
		},
		{
			name:   "sin marcador",
			href:   "https://sklad/api/entity/service/xyz",
			wantOK: false,
		},
		{
			name:   "href vacío",
			href:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, id, ok := report.ResolveIdentity(tt.href)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, kind)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

package report

import (
	"strings"

	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
)

const (
	variantMarker = "/variant/"
	productMarker = "/product/"
)

// ResolveIdentity extrae el tipo y el id del artículo del href de la fila de
// rentabilidad, ubicando el marcador /variant/ o /product/. Si no hay marcador
// la identidad no es resoluble (ok == false): la fila se marca con error de
// identidad pero no aborta el build.
func ResolveIdentity(assortmentHref string) (itemKind, itemID string, ok bool) {
	if idx := strings.Index(assortmentHref, variantMarker); idx >= 0 {
		return entity.ItemKindVariant, trimID(assortmentHref[idx+len(variantMarker):]), true
	}
	if idx := strings.Index(assortmentHref, productMarker); idx >= 0 {
		return entity.ItemKindProduct, trimID(assortmentHref[idx+len(productMarker):]), true
	}
	return "", "", false
}

// trimID corta cualquier sufijo de query o segmento extra después del id.
func trimID(s string) string {
	if i := strings.IndexAny(s, "/?"); i >= 0 {
		return s[:i]
	}
	return s
}

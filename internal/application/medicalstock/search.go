package medicalstock

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// foldTransformer descompone, elimina las marcas diacríticas y recompone,
// para que "análisis" y "analisis" comparen igual.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// FilterMedicals filtra los productos por el texto de búsqueda de la
// pantalla: se parte por espacios y un producto entra si alguno de los
// términos está contenido en su código o en su descripción, sin distinguir
// mayúsculas ni acentos. Texto vacío devuelve la lista completa.
func FilterMedicals(medicals []*entity.Medical, query string) []*entity.Medical {
	patterns := strings.Fields(fold(query))
	if len(patterns) == 0 {
		return medicals
	}

	out := make([]*entity.Medical, 0, len(medicals))
	for _, m := range medicals {
		code := fold(m.ProdCode)
		desc := fold(m.Description)
		for _, p := range patterns {
			if strings.Contains(code, p) || strings.Contains(desc, p) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

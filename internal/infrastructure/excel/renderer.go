// Package excel renderiza la grilla del reporte de rentabilidad como un
// archivo XLSX: encabezado fijo en negrita blanco sobre negro, tabla con
// bandas, paneles congelados, ancho de columna automático e hipervínculo al
// artículo en la plataforma.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/rentabilidad-api/internal/application/report"
	"github.com/jhoicas/rentabilidad-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Renderer implementa el puerto.
var _ report.GridRenderer = (*Renderer)(nil)

// Textos de celda para filas sin velocidad calculable.
const (
	cellNoData        = "Sin datos"
	cellNoMovements   = "Sin movimientos"
	cellIdentityError = "Error"
)

var columns = []string{"Nombre", "Cantidad", "Rentabilidad", "Velocidad de venta", "Pronóstico"}

// Options comportamiento del render.
type Options struct {
	// DistinguishNoData separa "velocidad 0" (se muestra 0) de "sin
	// movimientos en el libro". Apagado, ambas se muestran como Sin datos,
	// que es el comportamiento histórico del reporte.
	DistinguishNoData bool
}

// Renderer implementa report.GridRenderer con excelize.
type Renderer struct {
	opts Options
}

// NewRenderer construye el renderizador.
func NewRenderer(opts Options) *Renderer { return &Renderer{opts: opts} }

// Render escribe la grilla como XLSX en w. El nombre de la hoja sale del
// título sugerido de la grilla, saneado y recortado al límite de Excel.
func (r *Renderer) Render(grid *entity.ReportGrid, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(grid.SuggestedTitle)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("excel: nombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"000000"}},
	})
	if err != nil {
		return fmt.Errorf("excel: estilo de encabezado: %w", err)
	}
	groupStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("excel: estilo de grupo: %w", err)
	}

	for col, title := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	rowNo := 2
	for _, gridRow := range grid.Rows {
		switch gridRow.Kind {
		case entity.GridRowHeader:
			if err := r.writeGroupHeader(f, sheet, rowNo, gridRow, groupStyle); err != nil {
				return err
			}
		case entity.GridRowItem:
			if err := r.writeItemRow(f, sheet, rowNo, gridRow.Item); err != nil {
				return err
			}
		}
		rowNo++
	}

	lastRow := rowNo - 1
	if lastRow >= 2 {
		if err := f.AddTable(sheet, &excelize.Table{
			Range:           fmt.Sprintf("A1:E%d", lastRow),
			Name:            "Rentabilidad",
			StyleName:       "TableStyleMedium9",
			ShowRowStripes:  boolPtr(true),
			ShowFirstColumn: false,
			ShowLastColumn:  false,
		}); err != nil {
			return fmt.Errorf("excel: tabla: %w", err)
		}
	}

	// Congelar la fila de encabezado
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("excel: freeze panes: %w", err)
	}

	if err := autoWidth(f, sheet, len(columns), lastRow); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return nil
}

// writeGroupHeader escribe el pseudo-encabezado de grupo: el nombre del nivel
// en la primera columna, en negrita, indentado dos espacios por nivel.
func (r *Renderer) writeGroupHeader(f *excelize.File, sheet string, rowNo int, row entity.GridRow, style int) error {
	cell, _ := excelize.CoordinatesToCellName(1, rowNo)
	label := strings.Repeat("  ", row.Level-1) + row.Label
	if err := f.SetCellValue(sheet, cell, label); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func (r *Renderer) writeItemRow(f *excelize.File, sheet string, rowNo int, item *entity.ReportRow) error {
	nameCell, _ := excelize.CoordinatesToCellName(1, rowNo)
	if err := f.SetCellValue(sheet, nameCell, item.DisplayName); err != nil {
		return err
	}
	if item.ItemHref != "" {
		if err := f.SetCellHyperLink(sheet, nameCell, item.ItemHref, "External"); err != nil {
			return err
		}
	}

	qtyCell, _ := excelize.CoordinatesToCellName(2, rowNo)
	qty, _ := item.SoldQuantity.Float64()
	if err := f.SetCellValue(sheet, qtyCell, qty); err != nil {
		return err
	}

	profitCell, _ := excelize.CoordinatesToCellName(3, rowNo)
	profit, _ := item.Profit.Float64()
	if err := f.SetCellValue(sheet, profitCell, profit); err != nil {
		return err
	}

	velCell, _ := excelize.CoordinatesToCellName(4, rowNo)
	if err := f.SetCellValue(sheet, velCell, r.velocityCell(item)); err != nil {
		return err
	}

	if item.Forecast != nil {
		forecastCell, _ := excelize.CoordinatesToCellName(5, rowNo)
		forecast, _ := item.Forecast.Float64()
		if err := f.SetCellValue(sheet, forecastCell, forecast); err != nil {
			return err
		}
	}
	return nil
}

// velocityCell decide el contenido de la celda de velocidad según el estado
// de la fila y la opción de distinguir "sin datos" de velocidad cero.
func (r *Renderer) velocityCell(item *entity.ReportRow) interface{} {
	switch item.VelocityStatus {
	case entity.VelocityIdentityError:
		return cellIdentityError
	case entity.VelocityNoData:
		if r.opts.DistinguishNoData {
			return cellNoMovements
		}
		return cellNoData
	default:
		if item.Velocity.IsZero() && !r.opts.DistinguishNoData {
			return cellNoData
		}
		v, _ := item.Velocity.Float64()
		return v
	}
}

// autoWidth ajusta cada columna al contenido más largo más un margen de 2,
// igual que el ajuste del reporte original.
func autoWidth(f *excelize.File, sheet string, cols, lastRow int) error {
	for col := 1; col <= cols; col++ {
		maxLen := 0
		for rowNo := 1; rowNo <= lastRow; rowNo++ {
			cell, _ := excelize.CoordinatesToCellName(col, rowNo)
			val, err := f.GetCellValue(sheet, cell)
			if err != nil {
				continue
			}
			if n := len([]rune(val)); n > maxLen {
				maxLen = n
			}
		}
		name, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheet, name, name, float64(maxLen+2)); err != nil {
			return err
		}
	}
	return nil
}

// sheetName sanea el título para cumplir las reglas de Excel: sin caracteres
// prohibidos y máximo 31 caracteres.
func sheetName(title string) string {
	if title == "" {
		title = "Rentabilidad"
	}
	replacer := strings.NewReplacer(
		":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ",
	)
	title = strings.TrimSpace(replacer.Replace(title))
	runes := []rune(title)
	if len(runes) > 31 {
		title = string(runes[:31])
	}
	if title == "" {
		title = "Rentabilidad"
	}
	return title
}

func boolPtr(b bool) *bool { return &b }

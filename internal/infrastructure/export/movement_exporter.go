// Package export serializa el historial de movimientos de un SKU a XLSX o CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

var header = []interface{}{"id", "direction", "date", "qty", "recorded_at"}

var _ ports.MovementExporter = (*MovementExporter)(nil)

// MovementExporter implementa ports.MovementExporter.
type MovementExporter struct{}

// NewMovementExporter construye el exportador.
func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

// Export genera el archivo en el formato pedido (xlsx | csv).
func (e *MovementExporter) Export(data *dto.MovementExportDTO, format string) (*dto.ExportFileDTO, error) {
	if data == nil {
		return nil, fmt.Errorf("export: datos vacíos")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	base := "movements_" + sanitize(data.SKU)

	switch format {
	case dto.ExportFormatXLSX:
		content, err := writeXLSX(data)
		if err != nil {
			return nil, err
		}
		return &dto.ExportFileDTO{Filename: base + ".xlsx", ContentType: contentTypeXLSX, Content: content}, nil
	case dto.ExportFormatCSV:
		content, err := writeCSV(data)
		if err != nil {
			return nil, err
		}
		return &dto.ExportFileDTO{Filename: base + ".csv", ContentType: contentTypeCSV, Content: content}, nil
	default:
		return nil, domain.NewValidationError("format", "formato no soportado: use xlsx o csv")
	}
}

func writeXLSX(data *dto.MovementExportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export: escribir cabecera: %w", err)
	}

	row := 2
	for _, m := range data.Movements {
		excelRow := []interface{}{
			m.ID,
			m.Direction,
			m.Date.Format("2006-01-02"),
			m.Qty,
			m.RecordedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("export: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("export: escribir fila %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("export: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSV(data *dto.MovementExportDTO) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = h.(string)
	}
	if err := w.Write(cols); err != nil {
		return nil, fmt.Errorf("export: escribir cabecera: %w", err)
	}
	for _, m := range data.Movements {
		rec := []string{
			m.ID,
			m.Direction,
			m.Date.Format("2006-01-02"),
			strconv.Itoa(m.Qty),
			m.RecordedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("export: escribir fila: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: escribir csv: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitize deja solo caracteres seguros para el nombre de archivo.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "sku"
	}
	return b.String()
}

// Package export genera las descargas del CRM: CSV por entidad y el reporte de KPI en PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// Format codificación de las celdas CSV.
type Format string

const (
	// FormatJSON cada celda es un literal JSON ("texto", 100, true; vacío como ""). Es el formato
	// histórico de las exportaciones y el que espera la UI.
	FormatJSON Format = "json"
	// FormatRFC4180 CSV estándar con comillas solo donde hace falta.
	FormatRFC4180 Format = "rfc4180"
)

// ParseFormat interpreta el parámetro format; vacío o desconocido es FormatJSON.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, string(FormatRFC4180)) {
		return FormatRFC4180
	}
	return FormatJSON
}

// RenderCSV arma el CSV con la fila de cabecera y una fila por registro. Solo se leen las
// columnas indicadas: cualquier otro campo del registro nunca sale en el archivo.
func RenderCSV(rows []entity.Record, columns []string, format Format) ([]byte, error) {
	if format == FormatRFC4180 {
		return renderRFC4180(rows, columns)
	}
	return renderJSONCells(rows, columns)
}

// renderJSONCells cabecera, "\n" y las filas unidas por "\n", sin salto final.
func renderJSONCells(rows []entity.Record, columns []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(columns, ","))
	buf.WriteByte('\n')
	for i, r := range rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for j, c := range columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			cell, err := jsonCell(r[c])
			if err != nil {
				return nil, fmt.Errorf("columna %s: %w", c, err)
			}
			buf.Write(cell)
		}
	}
	return buf.Bytes(), nil
}

func jsonCell(v any) ([]byte, error) {
	if v == nil {
		v = ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func renderRFC4180(rows []entity.Record, columns []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	line := make([]string, len(columns))
	for _, r := range rows {
		for j, c := range columns {
			cell, err := plainCell(r[c])
			if err != nil {
				return nil, fmt.Errorf("columna %s: %w", c, err)
			}
			line[j] = cell
		}
		if err := w.Write(line); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// plainCell texto tal cual; números, booleanos y objetos como su literal JSON.
func plainCell(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	}
	b, err := jsonCell(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Package tabular implements the flat-file exchange format for variant
// import/export: comma-separated UTF-8 text with RFC-4180 quoting, a
// mandatory header row, and a fixed column contract with localized
// header aliases. Parsing degrades malformed cells to defaults; only
// structural failures (no data rows, unterminated quote) are errors.
package tabular

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// Row is one decoded data row. Attributes maps the attribute column's
// header text (as written in the file) to the cell value; blank cells
// are omitted.
type Row struct {
	Index        int // 1-based data row number
	SKU          string
	Price        float64
	ComparePrice *float64
	Stock        int
	Images       []string
	IsActive     bool
	Attributes   map[string]string
}

// Recognized column kinds. Every unrecognized header is an attribute
// column.
const (
	colSKU = iota
	colPrice
	colStock
	colComparePrice
	colImages
	colIsActive
)

var headerAliases = map[string]int{
	"sku":          colSKU,
	"price":        colPrice,
	"stock":        colStock,
	"库存":           colStock,
	"compareprice": colComparePrice,
	"原价":           colComparePrice,
	"images":       colImages,
	"图片":           colImages,
	"isactive":     colIsActive,
	"状态":           colIsActive,
}

// activeTokens are the cell values meaning "enabled", compared
// case-insensitively.
var activeTokens = []string{"true", "1", "启用"}

func normalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "")
}

// scanRecords splits text into records of fields. A field may be
// wrapped in double quotes; a doubled quote inside a quoted field is a
// literal quote, and commas and newlines inside quotes do not split.
// Reaching end of input while still inside a quoted field is the one
// unrecoverable scan error.
func scanRecords(text string) ([][]string, error) {
	var (
		records  [][]string
		record   []string
		field    strings.Builder
		inQuotes bool
	)

	runes := []rune(text)
	endField := func() {
		record = append(record, field.String())
		field.Reset()
	}
	endRecord := func() {
		endField()
		records = append(records, record)
		record = nil
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if inQuotes {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteRune(r)
			continue
		}

		switch r {
		case '"':
			if field.Len() == 0 {
				inQuotes = true
			} else {
				// Stray quote mid-field; keep it literal.
				field.WriteRune(r)
			}
		case ',':
			endField()
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				endRecord()
				i++
			} else {
				field.WriteRune(r)
			}
		case '\n':
			endRecord()
		default:
			field.WriteRune(r)
		}
	}

	if inQuotes {
		return nil, ErrUnterminatedQuote
	}
	if field.Len() > 0 || len(record) > 0 {
		endRecord()
	}

	return records, nil
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Parse decodes the exchange text into rows. The first record is the
// header; blank lines are skipped. Malformed numeric cells fall back
// to zero values rather than failing the parse.
func Parse(text string) ([]Row, error) {
	records, err := scanRecords(text)
	if err != nil {
		return nil, err
	}

	var kept [][]string
	for _, rec := range records {
		if !isBlankRecord(rec) {
			kept = append(kept, rec)
		}
	}
	if len(kept) < 2 {
		return nil, ErrEmptyTable
	}

	header := kept[0]
	known := make(map[int]int) // column kind -> column index, first match wins
	type attrCol struct {
		idx int
		key string
	}
	var attrCols []attrCol

	for i, h := range header {
		if kind, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, taken := known[kind]; !taken {
				known[kind] = i
			}
			continue
		}
		if key := strings.TrimSpace(h); key != "" {
			attrCols = append(attrCols, attrCol{idx: i, key: key})
		}
	}

	rows := make([]Row, 0, len(kept)-1)
	for n, rec := range kept[1:] {
		cell := func(kind int) string {
			i, ok := known[kind]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		row := Row{
			Index:      n + 1,
			Attributes: make(map[string]string),
		}

		row.SKU = cell(colSKU)
		if row.SKU == "" {
			row.SKU = "SKU-" + strconv.Itoa(row.Index)
		}

		if f, err := strconv.ParseFloat(cell(colPrice), 64); err == nil {
			row.Price = f
		}
		if s, err := strconv.Atoi(cell(colStock)); err == nil {
			row.Stock = s
		}
		if cp := cell(colComparePrice); cp != "" {
			if f, err := strconv.ParseFloat(cp, 64); err == nil {
				row.ComparePrice = &f
			}
		}
		for _, img := range strings.Split(cell(colImages), ",") {
			if img = strings.TrimSpace(img); img != "" {
				row.Images = append(row.Images, img)
			}
		}
		row.IsActive = isActiveToken(cell(colIsActive))

		for _, c := range attrCols {
			if c.idx >= len(rec) {
				continue
			}
			if v := strings.TrimSpace(rec[c.idx]); v != "" {
				row.Attributes[c.key] = v
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func isActiveToken(s string) bool {
	for _, tok := range activeTokens {
		if strings.EqualFold(s, tok) {
			return true
		}
	}
	return false
}

// Serialize is the inverse of Parse. Column order is fixed: SKU, the
// given attribute columns, then price/compare price/stock/images/is
// active. Quoting follows RFC 4180, so Parse(Serialize(rows)) yields
// value-equivalent rows.
func Serialize(rows []Row, attributeNames []string) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := make([]string, 0, len(attributeNames)+6)
	header = append(header, "SKU")
	header = append(header, attributeNames...)
	header = append(header, "Price", "Compare Price", "Stock", "Images", "Is Active")
	_ = w.Write(header)

	for _, row := range rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, row.SKU)
		for _, name := range attributeNames {
			rec = append(rec, attributeValue(row, name))
		}
		rec = append(rec, strconv.FormatFloat(row.Price, 'f', -1, 64))
		if row.ComparePrice != nil {
			rec = append(rec, strconv.FormatFloat(*row.ComparePrice, 'f', -1, 64))
		} else {
			rec = append(rec, "")
		}
		rec = append(rec,
			strconv.Itoa(row.Stock),
			strings.Join(row.Images, ","),
			strconv.FormatBool(row.IsActive),
		)
		_ = w.Write(rec)
	}

	w.Flush()
	return sb.String()
}

// attributeValue looks up a row's attribute cell by display key,
// falling back to a case-insensitive match.
func attributeValue(row Row, name string) string {
	if v, ok := row.Attributes[name]; ok {
		return v
	}
	for k, v := range row.Attributes {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

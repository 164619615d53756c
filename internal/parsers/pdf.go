package parsers

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	apperrors "misoreports/internal/errors"
	"misoreports/pkg/tables"
)

// Cost summary PDF. The first page stacks two "Cost Paid by Load" tables,
// one per pricing run.

const costTableTitle = "Cost Paid by Load"

// pdfTextRows returns the visual rows of the first page, each as a slice of
// cell strings.
func pdfTextRows(body []byte) ([][]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "cannot open PDF document")
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return nil, apperrors.New(apperrors.KindParseShape, "expected a first page, found none")
	}
	textRows, err := page.GetTextByRow()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindParseShape, err, "cannot extract PDF text")
	}

	var rows [][]string
	for _, tr := range textRows {
		var cells []string
		for _, txt := range tr.Content {
			s := strings.TrimSpace(txt.S)
			if s != "" {
				cells = append(cells, s)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows, nil
}

// SRCTSL parses the transmission constraint cost summary into one table per
// titled section.
func SRCTSL(raw *RawReport) (*tables.Table, error) {
	rows, err := pdfTextRows(raw.Body)
	if err != nil {
		return nil, err
	}

	var names []string
	var tabs []*tables.Table
	for i := 0; i < len(rows); i++ {
		if !strings.HasPrefix(rows[i][0], costTableTitle) {
			continue
		}
		title := strings.Join(rows[i], " ")
		if i+1 >= len(rows) {
			return nil, apperrors.New(apperrors.KindParseShape,
				"expected a header row after %q, found end of page", title)
		}
		header := rows[i+1]

		t := &tables.Table{}
		t.Columns = append(t.Columns, tables.Column{Name: header[0], Type: tables.String})
		for _, h := range header[1:] {
			t.Columns = append(t.Columns, tables.Column{Name: h, Type: tables.Float})
		}

		j := i + 2
		for ; j < len(rows); j++ {
			if strings.HasPrefix(rows[j][0], costTableTitle) {
				break
			}
			record := rows[j]
			if len(record) != len(header) {
				continue
			}
			row := make([]any, len(header))
			row[0] = record[0]
			for k, val := range record[1:] {
				cleaned := strings.TrimSpace(moneyClean(val))
				if cleaned == "" {
					continue
				}
				f, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", ""), 64)
				if err != nil {
					return nil, apperrors.Wrap(apperrors.KindParseShape, err,
						"column %q: cannot convert %q", header[k+1], val)
				}
				row[k+1] = f
			}
			t.Rows = append(t.Rows, row)
		}
		names = append(names, title)
		tabs = append(tabs, t)
		i = j - 1
	}

	if len(tabs) == 0 {
		return nil, apperrors.New(apperrors.KindParseShape,
			"expected %q sections, found none", costTableTitle)
	}
	return tables.NewMulti(names, tabs)
}

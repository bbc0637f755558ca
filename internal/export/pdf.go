// Package export renders the page a list screen currently shows.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"recruitadmin/internal/utils"
)

// Sheet is one rendered table page.
type Sheet struct {
	Title       string
	Range       string
	Headers     []string
	Rows        [][]string
	GeneratedAt time.Time
	RequestID   string
}

const (
	pageWidth = 277.0 // A4 landscape minus margins
	rowHeight = 7.0
)

// PDF lays the sheet out as a landscape A4 table and returns the bytes and a file name.
func PDF(s Sheet) ([]byte, string, error) {
	if s.GeneratedAt.IsZero() {
		s.GeneratedAt = time.Now()
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(s.Title, false)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, safe(s.Title, "Export"))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s   %s", utils.FormatDateTime(s.GeneratedAt), s.Range))
	pdf.Ln(9)

	cols := len(s.Headers)
	if cols == 0 {
		cols = 1
	}
	width := pageWidth / float64(cols)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 236, 245)
		for _, h := range s.Headers {
			pdf.CellFormat(width, rowHeight, fit(pdf, h, width), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	header()

	if len(s.Rows) == 0 {
		pdf.CellFormat(pageWidth, rowHeight, "No data", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range s.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottom-5 {
			pdf.AddPage()
			header()
		}
		for i := 0; i < len(s.Headers); i++ {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			pdf.CellFormat(width, rowHeight, fit(pdf, text, width), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "pdf", fmt.Sprintf("title=%s rows=%d", s.Title, len(s.Rows)))

	filename := fmt.Sprintf("%s_%s.pdf", safeFilenamePart(s.Title), s.GeneratedAt.Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// fit shortens text with an ellipsis until it fits the cell.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	text = utils.NormalizeSpace(text)
	max := width - 2
	if pdf.GetStringWidth(text) <= max {
		return text
	}
	r := []rune(text)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > max {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "export"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

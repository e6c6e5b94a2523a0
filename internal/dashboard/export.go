package dashboard

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Candidates"

var rosterHeaders = []string{"Rank", "Name", "Email", "Phone", "Score", "Answered", "Completed"}

// ExportXLSX writes the ranked roster as a spreadsheet
func ExportXLSX(rows []Row) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close spreadsheet", "error", err)
		}
	}()

	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, rosterHeaders)
	if err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range rows {
		row++
		values := []any{
			r.Rank,
			r.Name,
			r.Email,
			r.Phone,
			r.Score,
			fmt.Sprintf("%d/%d", r.Answered, r.Total),
			yesNo(r.Completed),
		}
		for col, v := range values {
			if err := writeColumn(f, sheet, col+1, row, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if err := f.SetSheetName(sheet, rosterSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	return f.WriteToBuffer()
}

func writeColumn(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// writeHeader writes a bold header on the row after row and returns its number
func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return row, err
	}

	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return row, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return row, err
	}

	for i, h := range headers {
		if err := writeColumn(f, sheet, i+1, row, h); err != nil {
			return row, err
		}
	}
	return row, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// RenderPDF renders a candidate detail as a one-document report
func RenderPDF(d Detail) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render pdf: %v", r)
		}
	}()

	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(tr(d.Name+" - interview report"), false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr(d.Name+"'s Details"), "", 1, "L", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 11)
	for _, field := range [][2]string{
		{"Name", d.Name},
		{"Email", d.Email},
		{"Phone", d.Phone},
		{"Score", strconv.Itoa(d.Score)},
	} {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(25, 7, field[0]+":", "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 7, tr(field[1]), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Answers", "B", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	if len(d.Items) == 0 {
		doc.MultiCell(0, 6, NoAnswersYet, "", "L", false)
	}
	for _, it := range d.Items {
		doc.SetFont("Helvetica", "B", 11)
		doc.MultiCell(0, 6, tr(fmt.Sprintf("Q%d: %s", it.Number, it.Question)), "", "L", false)
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 6, tr(fmt.Sprintf("A%d: %s  (score %d)", it.Number, it.Answer, it.Score)), "", "L", false)
		doc.Ln(2)
	}

	doc.Ln(2)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 7, "AI Summary:", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	if d.Summary != "" {
		doc.MultiCell(0, 6, tr(d.Summary), "", "L", false)
	}
	doc.MultiCell(0, 6, tr(d.SummaryLine), "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

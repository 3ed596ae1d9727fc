package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"property_valuation/pkg/core/valuation"
)

const (
	SummarySheet   = "Valuations"
	DCFSheet       = "DCF"
	OutgoingsSheet = "Outgoings"
)

// Column binds a spreadsheet column to a dotted Result json path.
type Column struct {
	Key    string
	Header string
	Width  float64
}

// ExportColumns is the summary sheet layout after the plot name column.
var ExportColumns = []Column{
	{"classification", "Classification", 15},
	{"gla", "GLA (m²)", 12},
	{"gba", "GBA (m²)", 12},
	{"wale", "WALE (years)", 12},
	{"grossAnnualIncome.market", "Gross Annual Income", 20},
	{"monthlyRentalRate", "Monthly Rental per m²", 20},
	{"outgoingsAnnual.market", "Annual Outgoings", 18},
	{"outgoingsIncomeRatio", "Outgoings / Income (%)", 20},
	{"netAnnualRentalIncome", "Net Annual Rental Income", 24},
	{"capitalisedValue", "Capitalised Value", 20},
	{"capitalisedFigure", "Capitalised Value per m²", 22},
	{"dcfMarketValue", "DCF Market Value", 20},
	{"comparables.avgPrice", "Comparable Avg Price", 20},
	{"landValue", "Land Value", 18},
	{"marketValue", "Market Value", 20},
	{"sayMarketValueExport", "Say Market Value", 20},
	{"forcedSaleValue", "Forced Sale Value", 20},
	{"grc.netTotal", "GRC Net Total", 18},
	{"grc.deprTotal", "Depreciated Replacement Cost", 26},
	{"capitalValue", "Capital Value", 20},
	{"replacementCost", "Insurance Replacement Value", 26},
}

// amountColumnsFrom is the first ExportColumns index holding a currency
// amount. Classification, areas and WALE precede it.
const amountColumnsFrom = 4

var (
	dcfHeaders       = []string{"Plot", "Year", "Income", "Cash Flow", "Discount Factor", "Present Value"}
	outgoingsHeaders = []string{"Plot", "Item", "Kind", "Annual Amount"}
)

// Fields flattens a Result into its json vocabulary with dotted keys for
// nested objects. Arrays are omitted.
func Fields(res valuation.Result) (map[string]interface{}, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	var nested map[string]interface{}
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, err
	}
	flat := make(map[string]interface{})
	flatten("", nested, flat)
	return flat, nil
}

func flatten(prefix string, in map[string]interface{}, out map[string]interface{}) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case []interface{}:
		default:
			out[key] = val
		}
	}
}

// Workbook renders rows into an xlsx document: a summary sheet with one line
// per plot, a DCF sheet with every projected period and an outgoings sheet
// listing each plot's outgoing lines in display order.
func Workbook(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close is handled explicitly.

	index, err := f.NewSheet(SummarySheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	for _, sheet := range []string{DCFSheet, OutgoingsSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	amountFmt := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}

	headers := []string{"Plot"}
	widths := []float64{30}
	for _, c := range ExportColumns {
		headers = append(headers, c.Header)
		widths = append(widths, c.Width)
	}
	headers = append(headers, "Error")
	widths = append(widths, 40)

	if err := writeHeader(f, SummarySheet, headers, widths, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeHeader(f, DCFSheet, dcfHeaders, []float64{30, 8, 18, 18, 16, 18}, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeHeader(f, OutgoingsSheet, outgoingsHeaders, []float64{30, 30, 8, 18}, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	dcfRow, outgoingRow := 2, 2
	for i, r := range rows {
		row := i + 2
		if err := setCellValue(f, SummarySheet, 1, row, plotLabel(r)); err != nil {
			f.Close()
			return nil, err
		}
		if r.Err != nil {
			if err := setCellValue(f, SummarySheet, len(headers), row, r.Err.Error()); err != nil {
				f.Close()
				return nil, err
			}
			continue
		}

		fields, err := Fields(r.Result)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to flatten result for row %d: %w", row, err)
		}
		for c, col := range ExportColumns {
			value, ok := fields[col.Key]
			if !ok {
				continue
			}
			if err := setCellValue(f, SummarySheet, c+2, row, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, c+2, err)
			}
		}

		for _, p := range r.Result.DCF.Periods {
			values := []interface{}{plotLabel(r), p.Year, p.Income, p.CashFlow, p.DiscountFactor, p.PresentValue}
			for c, v := range values {
				if err := setCellValue(f, DCFSheet, c+1, dcfRow, v); err != nil {
					f.Close()
					return nil, err
				}
			}
			dcfRow++
		}

		for _, o := range r.Result.Outgoings {
			values := []interface{}{plotLabel(r), o.Identifier, o.Kind.String(), o.Annual}
			for c, v := range values {
				if err := setCellValue(f, OutgoingsSheet, c+1, outgoingRow, v); err != nil {
					f.Close()
					return nil, err
				}
			}
			outgoingRow++
		}
	}

	if len(rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(amountColumnsFrom+2, 2)
		last, _ := excelize.CoordinatesToCellName(len(ExportColumns)+1, len(rows)+1)
		if err := f.SetCellStyle(SummarySheet, first, last, amountStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set amount style: %w", err)
		}
	}

	if outgoingRow > 2 {
		last, _ := excelize.CoordinatesToCellName(len(outgoingsHeaders), outgoingRow-1)
		if err := f.SetCellStyle(OutgoingsSheet, "D2", last, amountStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set amount style: %w", err)
		}
	}

	for _, sheet := range []string{SummarySheet, DCFSheet, OutgoingsSheet} {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to freeze panes: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, widths []float64, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		if col < len(widths) && widths[col] > 0 {
			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return fmt.Errorf("failed to convert column number: %w", err)
			}
			if err := f.SetColWidth(sheet, name, name, widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}
	return nil
}

func setCellValue(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func plotLabel(r Row) string {
	if r.Plot == nil {
		return ""
	}
	if r.Plot.Name != "" {
		return r.Plot.Name
	}
	return r.Plot.ID.String()
}

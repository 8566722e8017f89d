package reports

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
)

// Kind selects one of the three report projections.
type Kind string

const (
	KindFlat    Kind = "flat"
	KindGrouped Kind = "grouped"
	KindChart   Kind = "chart"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindFlat, KindGrouped, KindChart:
		return Kind(s), nil
	}
	return "", fmt.Errorf("invalid report kind %q", s)
}

// FileName is the fixed attachment name per kind, overwritten on each run.
func FileName(kind Kind) string {
	return fmt.Sprintf("report_%s.pdf", kind)
}

// Generator renders reservation reports to PDF files under Dir. All three
// kinds share the same pipeline: fetch joined rows ascending, transform into
// document elements per kind, write the file.
type Generator struct {
	DB  *gorm.DB
	Dir string
}

func NewGenerator(db *gorm.DB, dir string) *Generator {
	return &Generator{DB: db, Dir: dir}
}

type row struct {
	ID              uint
	CustomerName    string
	TableNumber     int
	ReservationDate time.Time
	GuestCount      int
}

// Generate builds the report of the given kind and returns the output path.
// On failure a partially written file may remain; only a nil error means the
// file is complete.
func (g *Generator) Generate(kind Kind) (string, error) {
	rows, err := g.fetchRows()
	if err != nil {
		return "", err
	}

	var doc *fpdf.Fpdf
	switch kind {
	case KindFlat:
		doc = newDoc("Restaurant Reservation Report")
		renderFlat(doc, rows)
	case KindGrouped:
		doc = newDoc("Grouped Reservation Report")
		renderGrouped(doc, rows)
	case KindChart:
		doc = newDoc("Reservation Chart Report")
		if err := renderChart(doc, rows); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("invalid report kind %q", kind)
	}

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(g.Dir, FileName(kind))
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", err
	}
	return path, nil
}

func (g *Generator) fetchRows() ([]row, error) {
	var rows []row
	err := g.DB.Model(&models.Reservation{}).
		Select("reservations.id, customers.name AS customer_name, reservations.table_number, " +
			"reservations.reservation_date, reservations.guest_count").
		Joins("JOIN customers ON customers.id = reservations.customer_id").
		Order("reservations.reservation_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// newDoc starts a Letter-sized document with the shared title and
// generated-on header.
func newDoc(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(48, 63, 159)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 8, "Generated on "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(0, 0, 0)
	return pdf
}

// renderDataTable draws a bordered table with a dark header row and
// alternating row fill.
func renderDataTable(pdf *fpdf.Fpdf, headers []string, widths []float64, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(69, 90, 100)
	pdf.SetTextColor(245, 245, 245)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for _, r := range rows {
		if fill {
			pdf.SetFillColor(211, 211, 211)
		} else {
			pdf.SetFillColor(245, 245, 245)
		}
		for i, cell := range r {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}
}

func renderFlat(pdf *fpdf.Fpdf, rows []row) {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			fmt.Sprintf("%d", r.ID),
			r.CustomerName,
			fmt.Sprintf("%d", r.TableNumber),
			r.ReservationDate.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.GuestCount),
		})
	}
	renderDataTable(pdf,
		[]string{"Reservation ID", "Customer Name", "Table", "Date", "Guests"},
		[]float64{32, 62, 22, 46, 22},
		table)
}

func renderGrouped(pdf *fpdf.Fpdf, rows []row) {
	for _, group := range groupByDate(rows) {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 9, "Date: "+group.date, "", 1, "L", false, 0, "")
		pdf.Ln(1)

		table := make([][]string, 0, len(group.rows))
		for _, r := range group.rows {
			table = append(table, []string{
				r.CustomerName,
				fmt.Sprintf("%d", r.TableNumber),
				fmt.Sprintf("%d", r.GuestCount),
			})
		}
		renderDataTable(pdf,
			[]string{"Customer Name", "Table", "Guests"},
			[]float64{92, 46, 46},
			table)
		pdf.Ln(6)
	}
}

func renderChart(pdf *fpdf.Fpdf, rows []row) error {
	counts := countByMonth(rows)
	if len(counts) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, "No reservations to chart.", "", 1, "C", false, 0, "")
		return nil
	}

	bars := make([]chart.Value, 0, len(counts))
	for _, mc := range counts {
		bars = append(bars, chart.Value{Label: mc.month, Value: float64(mc.count)})
	}

	graph := chart.BarChart{
		Title:      "Reservations per Month",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      1000,
		Height:     600,
		BarWidth:   60,
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return err
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("monthly_chart", opts, &buf)
	pdf.ImageOptions("monthly_chart", 15, pdf.GetY()+4, 180, 0, false, opts, 0, "")
	return nil
}

type dateGroup struct {
	date string
	rows []row
}

// groupByDate partitions rows by calendar date in first-seen order, which is
// ascending date order because the source query sorts by timestamp.
func groupByDate(rows []row) []dateGroup {
	var groups []dateGroup
	index := make(map[string]int)
	for _, r := range rows {
		date := r.ReservationDate.Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, dateGroup{date: date})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	return groups
}

type monthCount struct {
	month string
	count int
}

// countByMonth buckets rows by calendar month in ascending order. Every row
// lands in exactly one bucket.
func countByMonth(rows []row) []monthCount {
	var counts []monthCount
	index := make(map[string]int)
	for _, r := range rows {
		month := r.ReservationDate.Format("2006-01")
		i, ok := index[month]
		if !ok {
			i = len(counts)
			index[month] = i
			counts = append(counts, monthCount{month: month})
		}
		counts[i].count++
	}
	return counts
}

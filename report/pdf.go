package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// disclaimer is printed in the footer of every page.
const disclaimer = "DISCLAIMER: This report is AI-generated for informational purposes only. " +
	"Verify all incidents with official sources before making insurance decisions."

// RendererOptions control the branding of the generated document.
type RendererOptions struct {
	// Title is the header line on every page.
	Title string
	// Attribution is the secondary header line.
	Attribution string
	// DisableCompression turns off Flate compression of page streams
	// so the page content stays inspectable. Used by tests.
	DisableCompression bool
}

func (o *RendererOptions) applyDefaults() {
	if o.Title == "" {
		o.Title = "CYBER RISK REPORT"
	}
	if o.Attribution == "" {
		o.Attribution = "Automated Cyber Risk Reporting"
	}
}

// Renderer paginates Records into a branded PDF document.
//
// Rendering is deterministic: the document carries a fixed creation
// date, so the same ordered record list always produces byte-identical
// output.
type Renderer struct {
	opts RendererOptions
}

// NewRenderer returns a Renderer with defaults applied.
func NewRenderer(opts RendererOptions) *Renderer {
	opts.applyDefaults()
	return &Renderer{opts: opts}
}

// Render produces the complete document for at most MaxRecords records,
// in the order given. All displayed text passes through Sanitize; link
// targets keep the raw URL.
func (r *Renderer) Render(records []Record) ([]byte, error) {
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!r.opts.DisableCompression)

	// Pin the embedded timestamps and sort the resource catalog so
	// identical input renders to identical bytes.
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetModificationDate(time.Unix(0, 0).UTC())
	pdf.SetCatalogSort(true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 15)
		pdf.SetTextColor(20, 50, 100)
		pdf.CellFormat(0, 10, tr(Sanitize(r.opts.Title)), "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 5, tr(Sanitize(r.opts.Attribution)), "", 1, "C", false, 0, "")
		pdf.SetDrawColor(20, 50, 100)
		pdf.Line(10, 22, 200, 22)
		pdf.Ln(10)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(Sanitize(disclaimer)), "", 0, "C", false, 0, "")
	})

	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	for _, rec := range records {
		r.renderRecord(pdf, tr, rec)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderRecord(pdf *fpdf.Fpdf, tr func(string) string, rec Record) {
	// Title
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(180, 0, 0)
	pdf.MultiCell(0, 6, tr(Sanitize(rec.Title)), "", "L", false)

	// Source line, clickable when a real URL is present
	pdf.SetFont("Helvetica", "U", 9)
	pdf.SetTextColor(0, 0, 255)
	link := ""
	if rec.HasURL() {
		link = rec.URL
	}
	pdf.CellFormat(0, 5, tr(Sanitize("Read Source: "+rec.URL)), "", 1, "L", false, 0, link)

	// Industry
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 5, tr(Sanitize("Industry: "+rec.Industry)), "", 1, "L", false, 0, "")

	// Summary
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4, tr(Sanitize("Summary: "+rec.Summary)), "", "L", false)

	// Risk tip and insurance note
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.MultiCell(0, 5, tr(Sanitize("Risk Tip: "+rec.Tip)), "", "L", false)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.MultiCell(0, 5, tr(Sanitize("Insurance: "+rec.InsuranceNote)), "", "L", false)

	pdf.Ln(4)
}

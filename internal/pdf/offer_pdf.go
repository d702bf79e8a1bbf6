package pdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"speakerbureau/internal/models"
)

// OfferGenerator renders firm-offer packets for the back office. Content is
// plain ASCII so the built-in core fonts are enough.
type OfferGenerator struct {
	bureauName string
}

func NewOfferGenerator(bureauName string) *OfferGenerator {
	if bureauName == "" {
		bureauName = "Speaker Bureau"
	}
	return &OfferGenerator{bureauName: bureauName}
}

// OfferPacket renders the offer's three content sections and its
// confirmation state into a single-page PDF.
func (g *OfferGenerator) OfferPacket(o *models.FirmOffer) (*bytes.Buffer, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Firm Offer #%d", o.ID), false)
	doc.SetAuthor(g.bureauName, false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "FIRM OFFER", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	sub := fmt.Sprintf("Offer #%d  /  Proposal #%d  /  %s",
		o.ID, o.ProposalID, o.CreatedAt.Format("Jan 2, 2006"))
	doc.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(doc)

	g.section(doc, "Event Overview", o.EventOverview)
	g.section(doc, "Speaker Program", o.SpeakerProgram)
	g.section(doc, "Financial Details", o.FinancialDetails)
	g.confirmation(doc, o)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render offer pdf: %w", err)
	}
	return &buf, nil
}

func (g *OfferGenerator) section(doc *gofpdf.Fpdf, title string, raw json.RawMessage) {
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)

	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		doc.CellFormat(0, 6, "To be determined", "", 1, "L", false, 0, "")
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		line := fmt.Sprintf("%s: %v", k, fields[k])
		doc.MultiCell(0, 6, line, "", "L", false)
	}
}

func (g *OfferGenerator) confirmation(doc *gofpdf.Fpdf, o *models.FirmOffer) {
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, "Confirmation", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)

	switch {
	case o.SpeakerConfirmed == nil:
		doc.CellFormat(0, 6, "Awaiting speaker response", "", 1, "L", false, 0, "")
	case *o.SpeakerConfirmed:
		doc.CellFormat(0, 6, "Confirmed by speaker on "+fmtDate(o.SpeakerRespondedAt), "", 1, "L", false, 0, "")
	default:
		doc.CellFormat(0, 6, "Declined by speaker on "+fmtDate(o.SpeakerRespondedAt), "", 1, "L", false, 0, "")
	}
	if o.SpeakerNotes != "" {
		doc.MultiCell(0, 6, "Notes: "+o.SpeakerNotes, "", "L", false)
	}
}

func (g *OfferGenerator) hr(doc *gofpdf.Fpdf) {
	doc.Ln(2)
	x, y := doc.GetXY()
	pageW, _ := doc.GetPageSize()
	doc.Line(x, y, pageW-20, y)
	doc.Ln(4)
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return "unknown date"
	}
	return t.Format("Jan 2, 2006")
}

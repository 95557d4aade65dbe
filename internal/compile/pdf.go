package compile

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"log/slog"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/relay-letters/relay/internal/interview"
	"github.com/relay-letters/relay/internal/schema"
)

// Artifact is a finished paginated document.
type Artifact struct {
	Data  []byte
	Pages int
}

func footerText(page int) string {
	return fmt.Sprintf("%s · Page %d", docTitle, page)
}

// Layout compiles the state into the paginated PDF. Section inclusion is
// decided by the same predicate the text compiler uses. A failure while
// rendering one section skips that section and keeps going; only a failure
// to produce the final byte stream returns an error.
func Layout(state interview.State, now time.Time) (Artifact, error) {
	p := newPageLayout()

	p.coverPage(now)
	p.tocPage(state)

	for _, def := range schema.Sections() {
		sec := schema.Get(def.ID)
		rec := state.Records[sec.ID]
		if !interview.HasData(rec, sec) {
			continue
		}
		p.renderSection(sec, rec)
	}

	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("produce pdf: %w", err)
	}
	return Artifact{Data: buf.Bytes(), Pages: p.pdf.PageNo()}, nil
}

// renderSection dispatches on the section's configured strategy. A panic in
// one section's rendering (bad data in a single field, a drawing edge case)
// must not abort the whole document, so it is recovered and logged here.
func (p *pageLayout) renderSection(sec *schema.Section, rec interview.Record) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Skipping section after render failure", "section", sec.ID, "panic", r)
		}
	}()

	p.newContentPage()
	p.sectionHeader(sec.Letter, sec.Title)

	switch effectiveStrategy(sec, rec) {
	case schema.StrategyCard:
		p.card("", groupFields(rec, sec))
		if sec.SignatureField != "" {
			p.signature(rec.Value(sec.SignatureField))
		}
	case schema.StrategyFreeText:
		for i := range sec.Fields {
			f := &sec.Fields[i]
			v := rec.Value(f.Name)
			if v == "" || v == f.Default || f.Kind == schema.KindSignature {
				continue
			}
			p.freeTextField(f.Label, v)
		}
	case schema.StrategyTwoColumnCards:
		p.twoColumnCards(itemCards(rec, sec))
	case schema.StrategyTable:
		p.tableSection(sec, rec)
	default: // StrategyCards
		for _, c := range itemCards(rec, sec) {
			p.card(c.Title, c.Fields)
		}
	}
}

// effectiveStrategy resolves the configured strategy against the populated
// item count: the two-column packing is only worth it for compact sections,
// so above the section's threshold it falls back to full-width cards.
func effectiveStrategy(sec *schema.Section, rec interview.Record) schema.Strategy {
	if sec.Strategy == schema.StrategyTwoColumnCards {
		n := 0
		for _, item := range rec.Items {
			if interview.ItemHasData(item, sec) {
				n++
			}
		}
		if sec.ColumnThreshold > 0 && n > sec.ColumnThreshold {
			return schema.StrategyCards
		}
	}
	return sec.Strategy
}

type itemCard struct {
	Title  string
	Fields []fieldText
	Notes  fieldText
}

func itemCards(rec interview.Record, sec *schema.Section) []itemCard {
	var cards []itemCard
	for _, item := range rec.Items {
		if !interview.ItemHasData(item, sec) {
			continue
		}
		c := itemCard{Title: item.Title(sec)}
		used := sec.TitleFields(item.Values)
		for i := range sec.Fields {
			f := &sec.Fields[i]
			if used[f.Name] || f.Kind == schema.KindSignature {
				continue
			}
			v := item.Value(f.Name)
			if v == "" || v == f.Default {
				continue
			}
			c.Fields = append(c.Fields, fieldText{Label: f.Label, Value: v})
		}
		if nf := sec.Table.NotesField; nf != "" {
			if v := item.Value(nf); v != "" {
				c.Notes = fieldText{Label: fieldLabel(sec, nf), Value: v}
			}
		}
		cards = append(cards, c)
	}
	return cards
}

func groupFields(rec interview.Record, sec *schema.Section) []fieldText {
	var fields []fieldText
	for i := range sec.Fields {
		f := &sec.Fields[i]
		if f.Kind == schema.KindSignature {
			continue
		}
		v := rec.Value(f.Name)
		if v == "" || v == f.Default {
			continue
		}
		fields = append(fields, fieldText{Label: f.Label, Value: v})
	}
	return fields
}

func fieldLabel(sec *schema.Section, name string) string {
	if f := sec.Field(name); f != nil {
		return f.Label
	}
	return name
}

// twoColumnCards packs cards two per row; the row advances by the taller of
// the pair so columns stay aligned.
func (p *pageLayout) twoColumnCards(cards []itemCard) {
	for i := 0; i < len(cards); i += 2 {
		var right *itemCard
		if i+1 < len(cards) {
			right = &cards[i+1]
		}
		p.cardPair(&cards[i], right)
	}
}

// tableSection draws the summary table, then a detail card for every item
// whose long-form notes did not fit the tabular format.
func (p *pageLayout) tableSection(sec *schema.Section, rec interview.Record) {
	cards := itemCards(rec, sec)

	headers := make([]string, 0, len(sec.Table.Columns))
	for _, col := range sec.Table.Columns {
		headers = append(headers, fieldLabel(sec, col))
	}
	rows := make([][]string, 0, len(rec.Items))
	for _, item := range rec.Items {
		if !interview.ItemHasData(item, sec) {
			continue
		}
		row := make([]string, 0, len(sec.Table.Columns))
		for _, col := range sec.Table.Columns {
			row = append(row, item.Value(col))
		}
		rows = append(rows, row)
	}
	p.table(headers, rows)

	for _, c := range cards {
		if c.Notes.Value == "" {
			continue
		}
		p.card(c.Title, []fieldText{c.Notes})
	}
}

// coverPage draws the leading title page. It does not use the content-page
// footer; the cover carries only the product line.
func (p *pageLayout) coverPage(now time.Time) {
	p.pdf.AddPage()
	p.setFill(cream)
	p.pdf.Rect(0, 0, p.pageW, p.pageH, "F")

	y := 80.0
	p.font("B", 32)
	p.setColor(charcoal)
	p.drawCentered(y, docTitle)

	y += 15
	p.font("", 12)
	p.setColor(charcoalLight)
	p.drawCentered(y, p.text("Generated "+now.Format("January 2, 2006")))

	y += 30
	p.setDraw(border)
	p.pdf.Line(marginX+40, y, p.pageW-marginX-40, y)

	y += 15
	p.font("", 9)
	p.setColor(charcoalMuted)
	for _, ln := range p.measure(disclaimer, p.contentW()-20) {
		p.drawCentered(y, ln)
		y += 4.5
	}

	p.font("", 8)
	p.setColor(charcoalMuted)
	p.drawCentered(p.pageH-15, "Generated with Relay")
}

// tocPage lists the included sections, one line each, straight from the
// inclusion predicate.
func (p *pageLayout) tocPage(state interview.State) {
	p.newContentPage()

	p.font("B", 18)
	p.setColor(charcoal)
	p.draw(marginX, p.cursorY+6, "Contents")
	p.cursorY += 18

	included := 0
	p.font("", 11)
	for _, def := range schema.Sections() {
		sec := schema.Get(def.ID)
		if !interview.HasData(state.Records[sec.ID], sec) {
			continue
		}
		included++
		p.checkBreak(8)
		p.setColor(sage)
		p.draw(marginX, p.cursorY+4, sec.Letter+".")
		p.setColor(charcoal)
		p.draw(marginX+10, p.cursorY+4, p.text(sec.Title))
		p.cursorY += 8
	}

	if included == 0 {
		p.font("I", 10)
		p.setColor(charcoalMuted)
		p.draw(marginX, p.cursorY+4, "No sections completed yet.")
	}
}

// signature embeds the captured signature image at natural aspect ratio
// within a fixed bounding box. A malformed payload is skipped silently —
// the document continues without it.
func (p *pageLayout) signature(dataURL string) {
	raw, ok := decodeSignaturePNG(dataURL)
	if !ok {
		return
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return
	}

	w, h := signatureBoxW, signatureBoxH
	ratio := float64(cfg.Width) / float64(cfg.Height)
	if w/h > ratio {
		w = h * ratio
	} else {
		h = w / ratio
	}

	p.checkBreak(labelH + signatureBoxH + fieldGap)
	p.font("B", 9)
	p.setColor(charcoalMuted)
	p.draw(marginX, p.cursorY+3.5, "Signature")
	p.cursorY += labelH + 1

	name := fmt.Sprintf("signature-%d-%.0f", p.pdf.PageNo(), p.cursorY)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	p.pdf.ImageOptions(name, marginX, p.cursorY, w, h, false, opts, 0, "")
	p.cursorY += signatureBoxH + fieldGap
}

func decodeSignaturePNG(dataURL string) ([]byte, bool) {
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

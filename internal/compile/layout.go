package compile

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres (A4 portrait).
const (
	marginX       = 25.0
	marginTop     = 25.0
	bottomReserve = 25.0 // safe content limit above the footer
	footerY       = 10.0 // footer baseline, measured from the page bottom

	lineH     = 5.0 // one wrapped body line
	labelH    = 5.0 // field label line
	fieldGap  = 3.0
	cardPad   = 5.0
	cardTitle = 8.0
	cardGap   = 6.0
	columnGap = 6.0

	headerBandH = 8.0
	tableRowH   = 7.0
	cellPad     = 2.0

	signatureBoxW = 70.0
	signatureBoxH = 30.0
)

type rgb struct{ r, g, b int }

var (
	charcoal      = rgb{26, 26, 26}
	charcoalLight = rgb{74, 74, 74}
	charcoalMuted = rgb{138, 138, 138}
	sage          = rgb{124, 144, 130}
	cream         = rgb{250, 250, 248}
	rowShade      = rgb{244, 243, 239}
	border        = rgb{224, 222, 216}
	white         = rgb{255, 255, 255}
)

// pageLayout carries the rendering state of an in-progress document: the
// vertical cursor on the current page and the page dimensions. All drawing
// goes through its primitives so page breaks stay consistent.
type pageLayout struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	cursorY float64
	pageW   float64
	pageH   float64
}

func newPageLayout() *pageLayout {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	w, h := pdf.GetPageSize()
	return &pageLayout{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		pageW: w,
		pageH: h,
	}
}

func (p *pageLayout) contentW() float64 { return p.pageW - 2*marginX }
func (p *pageLayout) safeBottom() float64 { return p.pageH - bottomReserve }

// text sanitizes a value for the core fonts: control characters other than
// newlines are dropped, then the string is transliterated to the font's
// code page. Unmappable runes degrade to substitution characters rather
// than aborting the render.
func (p *pageLayout) text(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r >= 0x20 {
			b.WriteRune(r)
		}
	}
	return p.tr(b.String())
}

func (p *pageLayout) setFill(c rgb)  { p.pdf.SetFillColor(c.r, c.g, c.b) }
func (p *pageLayout) setDraw(c rgb)  { p.pdf.SetDrawColor(c.r, c.g, c.b) }
func (p *pageLayout) setColor(c rgb) { p.pdf.SetTextColor(c.r, c.g, c.b) }

func (p *pageLayout) font(style string, size float64) {
	p.pdf.SetFont("Helvetica", style, size)
}

func (p *pageLayout) draw(x, y float64, s string) {
	p.pdf.Text(x, y, s)
}

func (p *pageLayout) drawCentered(y float64, s string) {
	w := p.pdf.GetStringWidth(s)
	p.pdf.Text((p.pageW-w)/2, y, s)
}

// newContentPage starts a fresh page: background, running footer with the
// page number, cursor back to the top margin.
func (p *pageLayout) newContentPage() {
	p.pdf.AddPage()
	p.setFill(cream)
	p.pdf.Rect(0, 0, p.pageW, p.pageH, "F")

	p.font("", 7)
	p.setColor(charcoalMuted)
	p.drawCentered(p.pageH-footerY, p.text(footerText(p.pdf.PageNo())))

	p.cursorY = marginTop
}

// checkBreak starts a new page if the next block of the given height would
// cross the safe bottom margin. Every multi-line primitive calls this before
// drawing anything.
func (p *pageLayout) checkBreak(needed float64) {
	if p.cursorY+needed > p.safeBottom() {
		p.newContentPage()
	}
}

// measure word-wraps a value against the current font without drawing and
// returns the resulting lines. Explicit newlines are honored; this is the
// measurement half of the measure-then-draw pattern, required because card
// backgrounds must be drawn before (and therefore sized before) their text.
func (p *pageLayout) measure(value string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(p.text(value), "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, p.pdf.SplitText(para, width)...)
	}
	return lines
}

// fieldText is one label/value pair prepared for drawing.
type fieldText struct {
	Label string
	Value string
}

// cardHeight sums a card's total height from its title and the wrapped
// heights of its fields. The value font must match drawCardAt.
func (p *pageLayout) cardHeight(title string, fields []fieldText, width float64) float64 {
	inner := width - 2*cardPad
	h := 2 * cardPad
	if title != "" {
		h += cardTitle
	}
	p.font("", 10)
	for _, f := range fields {
		h += labelH
		h += float64(len(p.measure(f.Value, inner))) * lineH
		h += fieldGap
	}
	return h
}

// drawCardAt draws a card of pre-measured height at an explicit position.
// Callers resolve the height (and run checkBreak) first; this only draws.
func (p *pageLayout) drawCardAt(x, y, width, height float64, title string, fields []fieldText) {
	p.setFill(white)
	p.setDraw(border)
	p.pdf.RoundedRect(x, y, width, height, 2.5, "1234", "FD")

	inner := width - 2*cardPad
	cy := y + cardPad
	if title != "" {
		p.font("B", 12)
		p.setColor(charcoal)
		p.draw(x+cardPad, cy+4.5, p.text(title))
		cy += cardTitle
	}
	for _, f := range fields {
		p.font("B", 8)
		p.setColor(charcoalMuted)
		p.draw(x+cardPad, cy+3.5, p.text(strings.ToUpper(f.Label)))
		cy += labelH

		p.font("", 10)
		p.setColor(charcoal)
		for _, ln := range p.measure(f.Value, inner) {
			p.draw(x+cardPad, cy+3.5, ln)
			cy += lineH
		}
		cy += fieldGap
	}
}

// card measures, breaks, and draws one full-width card, advancing the cursor
// past it.
func (p *pageLayout) card(title string, fields []fieldText) {
	h := p.cardHeight(title, fields, p.contentW())
	p.checkBreak(h)
	p.drawCardAt(marginX, p.cursorY, p.contentW(), h, title, fields)
	p.cursorY += h + cardGap
}

// cardPair draws two cards side by side at the same cursor position. The row
// height is the taller of the two, so the following row starts below both.
func (p *pageLayout) cardPair(left, right *itemCard) {
	colW := (p.contentW() - columnGap) / 2
	leftH := p.cardHeight(left.Title, left.Fields, colW)
	rowH := leftH
	var rightH float64
	if right != nil {
		rightH = p.cardHeight(right.Title, right.Fields, colW)
		if rightH > rowH {
			rowH = rightH
		}
	}
	p.checkBreak(rowH)
	p.drawCardAt(marginX, p.cursorY, colW, leftH, left.Title, left.Fields)
	if right != nil {
		p.drawCardAt(marginX+colW+columnGap, p.cursorY, colW, rightH, right.Title, right.Fields)
	}
	p.cursorY += rowH + cardGap
}

// freeTextField draws a label followed by wrapped body lines. Each line gets
// its own break check, so a long paragraph may continue onto the next page
// mid-field without losing or repeating lines.
func (p *pageLayout) freeTextField(label, value string) {
	p.checkBreak(labelH + lineH)
	p.font("B", 9)
	p.setColor(charcoalMuted)
	p.draw(marginX, p.cursorY+3.5, p.text(label))
	p.cursorY += labelH

	p.font("", 10)
	p.setColor(charcoal)
	for _, ln := range p.measure(value, p.contentW()) {
		p.checkBreak(lineH)
		p.draw(marginX, p.cursorY+3.5, ln)
		p.cursorY += lineH
	}
	p.cursorY += fieldGap
}

// truncate shortens a cell value until it fits the column. Table cells are
// fixed-height, so overlong values are cut at measure time, not wrapped —
// the table trades completeness for a scannable summary; full values live
// in the detail cards below it.
func (p *pageLayout) truncate(value string, width float64) string {
	s := p.text(strings.ReplaceAll(value, "\n", " "))
	if p.pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && p.pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// table draws a header band plus one fixed-height row per item with
// alternating shading.
func (p *pageLayout) table(headers []string, rows [][]string) {
	cols := len(headers)
	if cols == 0 {
		return
	}
	colW := p.contentW() / float64(cols)

	p.checkBreak(headerBandH + tableRowH)
	p.setFill(sage)
	p.pdf.Rect(marginX, p.cursorY, p.contentW(), headerBandH, "F")
	p.font("B", 9)
	p.setColor(white)
	for i, hd := range headers {
		p.draw(marginX+float64(i)*colW+cellPad, p.cursorY+5.5, p.truncate(hd, colW-2*cellPad))
	}
	p.cursorY += headerBandH

	p.font("", 9)
	for r, row := range rows {
		p.checkBreak(tableRowH)
		if r%2 == 1 {
			p.setFill(rowShade)
			p.pdf.Rect(marginX, p.cursorY, p.contentW(), tableRowH, "F")
		}
		p.setColor(charcoal)
		for i, cell := range row {
			if i >= cols {
				break
			}
			p.draw(marginX+float64(i)*colW+cellPad, p.cursorY+5, p.truncate(cell, colW-2*cellPad))
		}
		p.cursorY += tableRowH
	}
	p.cursorY += cardGap
}

// sectionHeader draws the lettered badge and title, as on the review screen.
func (p *pageLayout) sectionHeader(letter, title string) {
	p.checkBreak(20)
	p.setFill(sage)
	p.pdf.Circle(marginX+5, p.cursorY+3, 5, "F")
	p.font("B", 10)
	p.setColor(white)
	bw := p.pdf.GetStringWidth(letter)
	p.draw(marginX+5-bw/2, p.cursorY+4.5, letter)

	p.font("B", 16)
	p.setColor(charcoal)
	p.draw(marginX+14, p.cursorY+5, p.text(title))
	p.cursorY += 15
}

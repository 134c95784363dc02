// Package labels renders printable QR label sheets for a set of games.
//
// The layout targets 30-per-page label stock (3 columns by 10 rows on
// Letter paper). Each label carries a QR code pointing at the game's
// catalog page plus the name, player count, weight, rating and play time,
// with the weight color-coded by complexity band.
package labels

import (
	"bytes"
	"fmt"
	"io"

	"gameshelf/feature/collection"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	pageColumns = 3
	pageRows    = 10

	labelWidth      = 70.25
	labelHeight     = 25.275
	labelLeftMargin = 4.5
	labelTopMargin  = 15.5

	qrCodeSize = 22.0
	// 300 dpi over the 22mm printed QR size.
	qrCodePixels = 260

	lineHeight     = 5.0
	fontSizeName   = 10.0
	fontSizeDetail = 13.0

	positionText   = 1.0
	positionRating = 24.1
	positionCoop   = 27.0
)

// weightColors bands the complexity weight: 1 green, 2 blue, 3 yellow,
// 4+ red.
var weightColors = map[int][3]int{
	0: {40, 167, 69},
	1: {40, 167, 69},
	2: {0, 123, 255},
	3: {255, 193, 7},
	4: {220, 53, 69},
	5: {220, 53, 69},
}

// Generator builds label-sheet PDFs.
type Generator struct {
	pdf      *fpdf.Fpdf
	position int
	added    int
}

// NewGenerator prepares an empty Letter-format sheet.
func NewGenerator() *Generator {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()
	return &Generator{pdf: pdf}
}

// Skip leaves the next count label positions blank, for partially used
// sheets.
func (g *Generator) Skip(count int) *Generator {
	g.position += count
	return g
}

// Add renders one game onto the next label position.
func (g *Generator) Add(game collection.Game) error {
	if g.position >= pageColumns*pageRows {
		g.pdf.AddPage()
		g.position = 0
	}

	x := labelLeftMargin + float64(g.position%pageColumns)*labelWidth
	y := labelTopMargin + float64(g.position/pageColumns)*labelHeight

	png, err := qrcode.Encode(game.URL(), qrcode.Medium, qrCodePixels)
	if err != nil {
		return fmt.Errorf("labels: QR for game %d: %w", game.ID, err)
	}
	imageName := fmt.Sprintf("qr-%d", game.ID)
	g.pdf.RegisterImageOptionsReader(imageName,
		fpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(png))
	g.pdf.ImageOptions(imageName, x, y, qrCodeSize, qrCodeSize, false,
		fpdf.ImageOptions{ImageType: "png"}, 0, "")

	// Text block sits right of the QR code, nudged down so its center
	// lines up with the code.
	x += qrCodeSize
	y += positionText

	g.pdf.SetTextColor(0, 0, 0)

	g.pdf.SetXY(x, y)
	g.pdf.SetFont("Helvetica", "B", fontSizeName)
	g.pdf.Write(lineHeight, game.Name)
	g.pdf.Write(lineHeight, "\n")

	g.pdf.SetX(x)
	g.pdf.SetFont("Helvetica", "", fontSizeDetail)
	g.pdf.Write(lineHeight, "Players: ")
	g.pdf.SetFont("Helvetica", "B", fontSizeDetail)
	g.pdf.Write(lineHeight, game.Players())
	g.pdf.Write(lineHeight, "\n")

	g.pdf.SetX(x)
	g.pdf.SetFont("Helvetica", "", fontSizeDetail)
	g.pdf.Write(lineHeight, "Weight: ")
	g.pdf.SetFont("Helvetica", "B", fontSizeDetail)
	color := weightColors[clampWeightBand(int(game.Weight))]
	g.pdf.SetTextColor(color[0], color[1], color[2])
	g.pdf.Write(lineHeight, fmt.Sprintf("%0.1f", game.Weight))
	g.pdf.SetTextColor(0, 0, 0)

	g.pdf.SetX(x + positionRating)
	g.pdf.SetFont("Helvetica", "", fontSizeDetail)
	g.pdf.Write(lineHeight, " Rating: ")
	g.pdf.SetFont("Helvetica", "B", fontSizeDetail)
	g.pdf.Write(lineHeight, fmt.Sprintf("%0.1f", game.GeekRating))
	g.pdf.Write(lineHeight, "\n")

	g.pdf.SetX(x)
	g.pdf.SetFont("Helvetica", "", fontSizeDetail)
	g.pdf.Write(lineHeight, "Time: ")
	g.pdf.SetFont("Helvetica", "B", fontSizeDetail)
	g.pdf.Write(lineHeight, fmt.Sprintf("%d", game.PlayTime))

	g.pdf.SetX(x + positionCoop)
	g.pdf.SetFont("Helvetica", "", fontSizeDetail)
	g.pdf.Write(lineHeight, " Co-Op: ")
	g.pdf.SetFont("Helvetica", "B", fontSizeDetail)
	coop := "N"
	if game.Cooperative {
		coop = "Y"
	}
	g.pdf.Write(lineHeight, coop)

	g.position++
	g.added++
	return nil
}

// Build renders all games in order. At least one game is required; an
// empty set means the caller's criteria matched nothing.
func (g *Generator) Build(games []collection.Game) error {
	if len(games) == 0 {
		return fmt.Errorf("labels: no games matched, nothing generated")
	}
	for _, game := range games {
		if err := g.Add(game); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of labels added so far.
func (g *Generator) Count() int {
	return g.added
}

// PageCount returns the number of sheet pages.
func (g *Generator) PageCount() int {
	return g.pdf.PageCount()
}

// Output writes the finished PDF.
func (g *Generator) Output(w io.Writer) error {
	if err := g.pdf.Output(w); err != nil {
		return fmt.Errorf("labels: write PDF: %w", err)
	}
	return nil
}

func clampWeightBand(band int) int {
	if band < 0 {
		return 0
	}
	if band > 5 {
		return 5
	}
	return band
}

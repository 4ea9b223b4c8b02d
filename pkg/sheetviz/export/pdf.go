package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

// pdfMargin is the page margin in millimetres.
const pdfMargin = 10.0

// RenderPDF draws the view as a PNG and places it on a landscape A4 page.
func RenderPDF(w io.Writer, view models.View, opts RenderOptions) error {
	var img bytes.Buffer
	if err := RenderPNG(&img, view, opts); err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(view.Title, true)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("chart", imgOpts, &img)
	pdf.ImageOptions("chart", pdfMargin, pdfMargin, pageWidth-2*pdfMargin, 0, false, imgOpts, 0, "")

	return pdf.Output(w)
}

// Render writes the view in the given image format (PNG or PDF).
func Render(w io.Writer, format Format, view models.View, opts RenderOptions) error {
	switch format {
	case FormatPDF:
		return RenderPDF(w, view, opts)
	case FormatPNG:
		return RenderPNG(w, view, opts)
	default:
		return fmt.Errorf("format %q is not a chart format", format)
	}
}

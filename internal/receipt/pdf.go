package receipt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

const (
	marginLeft = 20.0
	lineHeight = 10.0
	pageBottom = 270.0
)

// PDFFormatter renders receipts as PDF documents named receipt_<date>.pdf.
// Every document goes to the archive and, when a directory is set, to disk.
type PDFFormatter struct {
	title   string
	dir     string
	archive *Archive
	log     *zap.Logger
}

type Option func(*PDFFormatter)

func WithTitle(title string) Option {
	return func(f *PDFFormatter) { f.title = title }
}

func WithDirectory(dir string) Option {
	return func(f *PDFFormatter) { f.dir = dir }
}

func WithLogger(log *zap.Logger) Option {
	return func(f *PDFFormatter) { f.log = log }
}

func NewPDFFormatter(archive *Archive, opts ...Option) *PDFFormatter {
	f := &PDFFormatter{
		title:   DefaultTitle,
		archive: archive,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FileName is the name the receipt is archived and downloaded under.
func FileName(r domain.Receipt) string {
	return r.Name() + ".pdf"
}

func (f *PDFFormatter) Format(r domain.Receipt) error {
	var buf bytes.Buffer
	if err := f.Render(r, &buf); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}

	name := FileName(r)
	f.archive.Put(name, buf.Bytes())

	if f.dir != "" {
		path := filepath.Join(f.dir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write receipt %s: %w", path, err)
		}
	}

	f.log.Info("receipt generated",
		zap.String("checkout_id", r.CheckoutID),
		zap.String("name", name),
		zap.Int("bytes", buf.Len()))
	return nil
}

func (f *PDFFormatter) Render(r domain.Receipt, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(f.title, true)
	pdf.SetCreationDate(r.Date)
	pdf.SetModificationDate(r.Date)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetY(12)
	pdf.CellFormat(0, lineHeight, tr(f.title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	y := 30.0
	for _, line := range Lines(r) {
		if y > pageBottom {
			pdf.AddPage()
			y = 20
		}
		if line != "" {
			pdf.Text(marginLeft, y, tr(line))
		}
		y += lineHeight
	}

	return pdf.Output(w)
}

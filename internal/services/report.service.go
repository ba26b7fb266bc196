package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"time"

	domainerrors "collectgames/internal/errors"
	"collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	reportTitle              = "CollectGames"
	collectionReportSubtitle = "My Retro Gaming Collection"
	wishlistReportSubtitle   = "My Gaming Wishlist"

	reportRowHeight   = 18.0
	reportThumbSize   = 15.0
	reportHeaderRowH  = 8.0
	reportMargin      = 10.0
	reportDateLayout  = "02/01/2006"
	reportNoImageText = "No Image"
)

var reportColumnWidths = []float64{20, 70, 40, 30, 30}

type ReportRenderer interface {
	CollectionPDF(ctx context.Context, items []*models.UserCollectionItem, generatedAt time.Time) ([]byte, error)
	WishlistPDF(ctx context.Context, items []*models.WishlistItem, generatedAt time.Time) ([]byte, error)
}

// Report is a rendered document ready for download.
type Report struct {
	Filename string
	Data     []byte
}

// ReportFilename builds CollectGames_<kind>_YYYYMMDD.pdf for the given day.
func ReportFilename(kind string, day time.Time) string {
	return fmt.Sprintf("CollectGames_%s_%s.pdf", kind, day.Format("20060102"))
}

// ImageResolver maps a stored image's public path to a local file.
type ImageResolver interface {
	LocalPath(publicPath string) (string, bool)
}

type ReportService struct {
	images ImageResolver
	log    logger.Logger
}

func NewReportService(images ImageResolver) *ReportService {
	return &ReportService{
		images: images,
		log:    logger.New("reportService"),
	}
}

type reportRow struct {
	imagePath string
	title     string
	platform  string
	status    string
	price     *decimal.Decimal
}

func (s *ReportService) CollectionPDF(
	ctx context.Context,
	items []*models.UserCollectionItem,
	generatedAt time.Time,
) ([]byte, error) {
	rows := make([]reportRow, 0, len(items))
	for _, item := range items {
		row := reportRow{
			imagePath: item.ImagePath(),
			status:    string(item.Condition),
			price:     item.PricePaid,
		}
		if item.Game != nil {
			row.title = item.Game.Title
			row.platform = item.Game.Platform
		}
		rows = append(rows, row)
	}

	summary := []string{fmt.Sprintf("Items: %d", len(items))}
	return s.render(ctx, collectionReportSubtitle, "Condition", summary, rows, generatedAt)
}

func (s *ReportService) WishlistPDF(
	ctx context.Context,
	items []*models.WishlistItem,
	generatedAt time.Time,
) ([]byte, error) {
	rows := make([]reportRow, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		rows = append(rows, reportRow{
			imagePath: item.ImagePath(),
			title:     item.Title,
			platform:  item.Platform,
			status:    string(item.Priority),
			price:     item.EstimatedPrice,
		})
		if item.EstimatedPrice != nil {
			total = total.Add(*item.EstimatedPrice)
		}
	}

	summary := []string{
		fmt.Sprintf("Items: %d", len(items)),
		"Est. Total: " + FormatEuro(total),
	}
	return s.render(ctx, wishlistReportSubtitle, "Priority", summary, rows, generatedAt)
}

// FormatEuro renders an amount as €0.00.
func FormatEuro(amount decimal.Decimal) string {
	return "€" + amount.StringFixed(2)
}

func (s *ReportService) render(
	ctx context.Context,
	subtitle, statusHeader string,
	summary []string,
	rows []reportRow,
	generatedAt time.Time,
) ([]byte, error) {
	log := s.log.TraceFromContext(ctx).Function("render")

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(reportMargin, reportMargin, reportMargin)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(reportTitle+" - "+subtitle, true)
	pdf.SetCreator(reportTitle, true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 12, reportTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, tr(subtitle), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, generatedAt.Format(reportDateLayout), "", 1, "C", false, 0, "")
	for _, line := range summary {
		pdf.CellFormat(0, 6, tr(line), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	headers := []string{"Image", "Title", "Platform", statusHeader, "Price"}
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(52, 58, 64)
		pdf.SetTextColor(255, 255, 255)
		for i, header := range headers {
			pdf.CellFormat(reportColumnWidths[i], reportHeaderRowH, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(33, 37, 41)
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if pdf.GetY()+reportRowHeight > pageHeight-15 {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(33, 37, 41)
		}

		x, y := pdf.GetX(), pdf.GetY()
		pdf.CellFormat(reportColumnWidths[0], reportRowHeight, "", "1", 0, "C", false, 0, "")
		if name, ok := s.registerThumbnail(pdf, i, row.imagePath); ok {
			pdf.ImageOptions(
				name,
				x+(reportColumnWidths[0]-reportThumbSize)/2,
				y+(reportRowHeight-reportThumbSize)/2,
				reportThumbSize,
				reportThumbSize,
				false,
				fpdf.ImageOptions{ImageType: "JPG"},
				0,
				"",
			)
		} else {
			pdf.SetXY(x, y)
			pdf.SetFont("Helvetica", "I", 7)
			pdf.CellFormat(reportColumnWidths[0], reportRowHeight, reportNoImageText, "", 0, "C", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.SetXY(x+reportColumnWidths[0], y)

		price := "-"
		if row.price != nil {
			price = FormatEuro(*row.price)
		}

		cells := []string{row.title, row.platform, row.status, price}
		aligns := []string{"L", "L", "C", "R"}
		for c, text := range cells {
			width := reportColumnWidths[c+1]
			pdf.CellFormat(width, reportRowHeight, fitText(pdf, tr, text, width-2), "1", 0, aligns[c], false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, log.Err("failed to render pdf", domainerrors.Internal("failed to render pdf", err))
	}

	return buf.Bytes(), nil
}

// registerThumbnail re-encodes a local jpg/png image as JPEG so a corrupt or
// unusual file never poisons the document.
func (s *ReportService) registerThumbnail(pdf *fpdf.Fpdf, index int, publicPath string) (string, bool) {
	if publicPath == "" || s.images == nil {
		return "", false
	}

	localPath, ok := s.images.LocalPath(publicPath)
	if !ok {
		return "", false
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", false
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil || (format != "jpeg" && format != "png") {
		return "", false
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return "", false
	}

	name := fmt.Sprintf("thumb-%d", index)
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPG"}, &buf)
	if pdf.Err() {
		return "", false
	}
	return name, true
}

// fitText truncates text with an ellipsis until it fits width. Measuring
// happens on the translated string the document will contain.
func fitText(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) string {
	if pdf.GetStringWidth(tr(text)) <= width {
		return tr(text)
	}

	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := tr(string(runes) + "...")
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

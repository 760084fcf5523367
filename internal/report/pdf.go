package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/Skufu/CareNote/internal/risk"
)

var ErrFontUnavailable = errors.New("font files for this language are not available")

type fontSet struct {
	family string
	files  map[string]string // style -> file name
}

var fontSets = map[Language]fontSet{
	English: {family: "DejaVu", files: map[string]string{
		"":  "DejaVuSans.ttf",
		"B": "DejaVuSans-Bold.ttf",
		"I": "DejaVuSans-Oblique.ttf",
	}},
	Korean: {family: "NotoSansKR", files: map[string]string{
		"":  "NotoSansKR-Regular.ttf",
		"B": "NotoSansKR-Bold.ttf",
		"I": "NotoSansKR-ExtraLight.ttf",
	}},
}

func (fs fontSet) availableIn(dir string) bool {
	if dir == "" {
		return false
	}
	for _, name := range fs.files {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			return false
		}
	}
	return true
}

type pdfText struct {
	title, riskHeading, noRisk, disclaimer, credit string
}

var pdfTexts = map[Language]pdfText{
	English: {
		title:       "Patient Report",
		riskHeading: "Detected Health Conditions with Risk Levels",
		noRisk:      "No high-risk conditions detected in this note.",
		disclaimer:  "Disclaimer: This report is for educational purposes only and not a substitute for professional medical advice.",
		credit:      "Data sources: World Health Organization (WHO), Centers for Disease Control and Prevention (CDC), World Dental Federation (FDI) and publicly available medical datasets",
	},
	Korean: {
		title:       "Patient Report",
		riskHeading: "위험 수준에 따른 건강 상태 감지",
		noRisk:      "이 노트에서는 고위험 조건이 감지되지 않았습니다.",
		disclaimer:  "면책 조항: 이 보고서는 전문적인 의학적 조언을 대신하는 것이 아니라 교육 목적으로만 작성되었습니다.",
		credit:      "데이터 출처: 세계보건기구(WHO), 미국질병통제예방센터(CDC), 세계치과의사연맹(FDI)과 공개 의료 데이터셋",
	},
}

var barRGB = map[string][3]int{
	"red":    {220, 53, 69},
	"orange": {253, 126, 20},
	"green":  {40, 167, 69},
}

// WritePDF renders doc as an A4 report. fontDir holds the TrueType fonts;
// English falls back to the core Helvetica font when they are missing, Korean
// cannot and returns ErrFontUnavailable.
func WritePDF(w io.Writer, doc *Document, fontDir string) error {
	text, ok := pdfTexts[doc.Language]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, doc.Language)
	}

	if err := CheckFonts(doc.Language, fontDir); err != nil {
		return err
	}

	fonts := fontSets[doc.Language]
	family := "Helvetica"
	var pdf *fpdf.Fpdf
	tr := func(s string) string { return s }

	if fonts.availableIn(fontDir) {
		pdf = fpdf.New("P", "mm", "A4", fontDir)
		for style, file := range fonts.files {
			pdf.AddUTF8Font(fonts.family, style, file)
		}
		family = fonts.family
	} else {
		pdf = fpdf.New("P", "mm", "A4", "")
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.SetTitle(text.title, true)
	pdf.SetCreator("CareNote", true)
	pdf.AddPage()

	pdf.SetFont(family, "", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 12, tr(text.title), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	for _, s := range doc.Sections {
		heading(pdf, family, tr(s.Title))
		pdf.SetFont(family, "", 12)
		pdf.MultiCell(0, 8, tr(s.Body), "", "L", false)
		pdf.Ln(4)
	}

	heading(pdf, family, tr(text.riskHeading))
	pdf.SetFont(family, "", 12)
	if doc.Risk.Empty() {
		pdf.MultiCell(0, 8, tr(text.noRisk), "", "L", false)
	} else {
		drawRiskChart(pdf, doc.Risk, family, tr)
		pdf.SetFont(family, "", 12)
		for _, e := range doc.Risk {
			pdf.CellFormat(0, 7, tr(fmt.Sprintf("%s: %d", e.Condition, e.Score)), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont(family, "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 6, tr(text.disclaimer), "", "L", false)
	pdf.Ln(3)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(0, 6, tr(text.credit), "", "R", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

// CheckFonts reports whether WritePDF can render lang with the fonts in
// fontDir.
func CheckFonts(lang Language, fontDir string) error {
	fonts, ok := fontSets[lang]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if lang != English && !fonts.availableIn(fontDir) {
		return fmt.Errorf("%w: %s in %q", ErrFontUnavailable, fonts.family, fontDir)
	}
	return nil
}

func heading(pdf *fpdf.Fpdf, family, title string) {
	pdf.SetFont(family, "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

const chartHeight = 50.0

func drawRiskChart(pdf *fpdf.Fpdf, report risk.Report, family string, tr func(string) string) {
	left, _, right, bottom := pdf.GetMargins()
	pageW, pageH := pdf.GetPageSize()
	if pdf.GetY()+chartHeight+15 > pageH-bottom {
		pdf.AddPage()
	}

	width := pageW - left - right
	top := pdf.GetY()
	base := top + chartHeight

	maxScore := 1
	for _, e := range report {
		if e.Score > maxScore {
			maxScore = e.Score
		}
	}

	slot := width / float64(len(report))
	barW := slot * 0.5
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(left, base, left+width, base)

	pdf.SetFont(family, "", 9)
	for i, e := range report {
		rgb := barRGB[e.Color()]
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])

		h := (chartHeight - 8) * float64(e.Score) / float64(maxScore)
		x := left + float64(i)*slot
		pdf.Rect(x+(slot-barW)/2, base-h, barW, h, "F")

		pdf.SetXY(x, base-h-5)
		pdf.CellFormat(slot, 5, strconv.Itoa(e.Score), "", 0, "C", false, 0, "")
		pdf.SetXY(x, base+1)
		pdf.CellFormat(slot, 5, tr(e.Condition), "", 0, "C", false, 0, "")
	}
	pdf.SetXY(left, base+9)
}

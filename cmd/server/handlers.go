package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Skufu/CareNote/internal/logging"
	"github.com/Skufu/CareNote/internal/report"
	"github.com/Skufu/CareNote/internal/risk"
	"github.com/Skufu/CareNote/internal/sanitize"
)

type api struct {
	catalog   *risk.Catalog
	generator *report.Generator // nil when no model API key is configured
	fontDir   string
	log       zerolog.Logger
}

type noteRequest struct {
	Note     string `json:"note"`
	Language string `json:"language"`
}

type questionRequest struct {
	Note     string `json:"note"`
	Question string `json:"question"`
}

type conditionView struct {
	Condition string `json:"condition"`
	Score     int    `json:"score"`
	Color     string `json:"color"`
}

type reportResponse struct {
	*report.Document
	Conditions []conditionView `json:"conditions"`
}

func conditionViews(r risk.Report) []conditionView {
	out := make([]conditionView, 0, len(r))
	for _, e := range r {
		out = append(out, conditionView{Condition: e.Condition, Score: e.Score, Color: e.Color()})
	}
	return out
}

func (a *api) llmStatus() string {
	if a.generator == nil {
		return "disabled"
	}
	return "configured"
}

func (a *api) listSamples(c *gin.Context) {
	lang, err := report.ParseLanguage(c.Query("lang"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "samples": report.Samples(lang)})
}

func (a *api) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, a.catalog)
}

func (a *api) scoreRisk(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}

	scores := risk.Score(req.Note, a.catalog)
	c.JSON(http.StatusOK, gin.H{
		"detected":   !scores.Empty(),
		"conditions": conditionViews(scores),
	})
}

func (a *api) renderChart(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	lang, err := report.ParseLanguage(req.Language)
	if err != nil {
		a.writeError(c, err)
		return
	}

	var buf bytes.Buffer
	err = report.RenderChart(&buf, risk.Score(req.Note, a.catalog), lang)
	if errors.Is(err, report.ErrNothingDetected) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (a *api) createReport(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	lang, err := report.ParseLanguage(req.Language)
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := report.ValidateNote(req.Note); err != nil {
		a.writeError(c, err)
		return
	}
	if !a.requireGenerator(c) {
		return
	}

	doc, err := a.generator.Generate(c.Request.Context(), req.Note, lang)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reportResponse{Document: doc, Conditions: conditionViews(doc.Risk)})
}

// createReportPDF renders the document returned by createReport. It makes no
// model calls, so the PDF carries exactly the text shown in the browser.
func (a *api) createReportPDF(c *gin.Context) {
	var doc report.Document
	if !bindJSON(c, &doc) {
		return
	}
	lang, err := report.ParseLanguage(string(doc.Language))
	if err != nil {
		a.writeError(c, err)
		return
	}
	doc.Language = lang
	if err := doc.Validate(); err != nil {
		a.writeError(c, err)
		return
	}

	for i := range doc.Sections {
		doc.Sections[i].Title = sanitize.Text(doc.Sections[i].Title)
		doc.Sections[i].Body = sanitize.Text(doc.Sections[i].Body)
	}
	doc.Risk = risk.Score(doc.Note, a.catalog)

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, &doc, a.fontDir); err != nil {
		a.writeError(c, err)
		return
	}

	filename := fmt.Sprintf("patient_report_%s.pdf", doc.Language)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (a *api) askQuestion(c *gin.Context) {
	var req questionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := report.ValidateQuestion(req.Note, req.Question); err != nil {
		a.writeError(c, err)
		return
	}
	if !a.requireGenerator(c) {
		return
	}

	answer, err := a.generator.Ask(c.Request.Context(), req.Note, req.Question)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (a *api) requireGenerator(c *gin.Context) bool {
	if a.generator != nil {
		return true
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":   "llm_disabled",
		"message": "language model API key is not configured",
	})
	return false
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return false
	}
	return true
}

// writeError surfaces a user-visible message and ends the request.
func (a *api) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, report.ErrEmptyNote),
		errors.Is(err, report.ErrEmptyQuestion),
		errors.Is(err, report.ErrEmptyReport),
		errors.Is(err, report.ErrUnsupportedLanguage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_failed", "message": err.Error()})
	case errors.Is(err, report.ErrFontUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "font_unavailable", "message": err.Error()})
	default:
		a.log.Error().Err(err).Str("request_id", logging.RequestID(c)).Msg("report request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "generation_failed", "message": err.Error()})
	}
}

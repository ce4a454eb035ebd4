package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tonnybx78/cz-name-checker/checker"
	"github.com/tonnybx78/cz-name-checker/export"
	"github.com/tonnybx78/cz-name-checker/server/apperrors"
	"github.com/tonnybx78/cz-name-checker/server/middleware"
)

// CheckRequest požadavek na prověření dodaných kandidátů.
type CheckRequest struct {
	Names      []string            `json:"names"`
	Thresholds *checker.Thresholds `json:"thresholds,omitempty"`
}

// CheckResponse odpověď s klasifikovanými kandidáty.
type CheckResponse struct {
	Results []checker.Result `json:"results"`
	Total   int              `json:"total"`
}

// GenerateRequest požadavek na vygenerování a prověření názvů.
type GenerateRequest struct {
	Keywords   string              `json:"keywords"`
	Style      string              `json:"style"`
	Count      int                 `json:"count"`
	Mode       string              `json:"mode"` // "report" (výchozí) nebo "strict"
	Thresholds *checker.Thresholds `json:"thresholds,omitempty"`
}

// GenerateResponse odpověď generačního běhu.
type GenerateResponse struct {
	Results   []checker.Result `json:"results"`
	Total     int              `json:"total"`
	Rounds    int              `json:"rounds"`
	Exhausted bool             `json:"exhausted,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// ExportRequest požadavek na export výsledků do souboru.
type ExportRequest struct {
	Results []checker.Result `json:"results"`
	Format  string           `json:"format"`
}

// ErrorResponse chybová odpověď API.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// sendError odešle chybovou odpověď a zaloguje detail.
func (s *Server) sendError(c *gin.Context, appErr *apperrors.AppError) {
	s.logger.Error("request failed",
		"path", c.Request.URL.Path,
		"status", appErr.StatusCode(),
		"error", appErr.Error(),
		"request_id", middleware.GetRequestID(c),
	)
	c.JSON(appErr.StatusCode(), ErrorResponse{
		Error:     appErr.UserMessage(),
		RequestID: middleware.GetRequestID(c),
	})
}

// handleHealth vrátí stav služby.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleCheck prověří kandidáty dodané volajícím, bez generování.
func (s *Server) handleCheck(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, apperrors.NewValidationError("neplatné tělo požadavku", err))
		return
	}
	if len(req.Names) == 0 {
		s.sendError(c, apperrors.NewValidationError("pole names nesmí být prázdné", nil))
		return
	}

	chk, appErr := s.checkerFor(req.Thresholds)
	if appErr != nil {
		s.sendError(c, appErr)
		return
	}

	results := chk.CheckAll(c.Request.Context(), req.Names)
	c.JSON(http.StatusOK, CheckResponse{Results: results, Total: len(results)})
}

// handleGenerate vygeneruje kandidáty a prověří je podle zvoleného režimu.
func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, apperrors.NewValidationError("neplatné tělo požadavku", err))
		return
	}

	strict := false
	switch req.Mode {
	case "", "report":
	case "strict":
		strict = true
	default:
		s.sendError(c, apperrors.NewValidationError(
			fmt.Sprintf("neznámý režim %q, povolené hodnoty jsou report a strict", req.Mode), nil))
		return
	}

	chk, appErr := s.checkerFor(req.Thresholds)
	if appErr != nil {
		s.sendError(c, appErr)
		return
	}
	if !chk.HasGenerator() {
		s.sendError(c, apperrors.NewUnavailableError(
			"generátor názvů není nakonfigurován, nastav OPENAI_API_KEY", nil))
		return
	}

	creq := checker.GenerateRequest{
		Keywords: req.Keywords,
		Style:    req.Style,
		Count:    req.Count,
		Strict:   strict,
	}
	if err := creq.Validate(); err != nil {
		s.sendError(c, apperrors.NewValidationError(err.Error(), err))
		return
	}

	outcome, err := chk.Generate(c.Request.Context(), creq)
	if err != nil {
		s.sendError(c, apperrors.NewUpstreamError(
			"generování názvů selhalo, zkus to prosím znovu", err))
		return
	}

	resp := GenerateResponse{
		Results:   outcome.Results,
		Total:     len(outcome.Results),
		Rounds:    outcome.Rounds,
		Exhausted: outcome.Exhausted,
	}
	if outcome.Exhausted {
		resp.Message = "Nepodařilo se najít dostatečný počet volných názvů. " +
			"Zkus snížit práh nebo upřesnit klíčová slova."
	}
	c.JSON(http.StatusOK, resp)
}

// handleExport odešle dodané výsledky jako soubor ve zvoleném formátu.
func (s *Server) handleExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendError(c, apperrors.NewValidationError("neplatné tělo požadavku", err))
		return
	}
	if len(req.Results) == 0 {
		s.sendError(c, apperrors.NewValidationError("pole results nesmí být prázdné", nil))
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		s.sendError(c, apperrors.NewValidationError(err.Error(), err))
		return
	}

	filename := fmt.Sprintf("name-check-%s.%s", time.Now().Format("20060102-150405"), format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", format.ContentType())
	c.Status(http.StatusOK)

	if err := export.Write(c.Writer, format, req.Results); err != nil {
		// Hlavičky už odešly, zbývá jen zalogovat.
		s.logger.Error("export failed", "format", format, "error", err,
			"request_id", middleware.GetRequestID(c))
	}
}

// checkerFor vrátí pipeline s prahy z požadavku, pokud byly dodány.
func (s *Server) checkerFor(th *checker.Thresholds) (*checker.Checker, *apperrors.AppError) {
	if th == nil {
		return s.checker, nil
	}
	chk, err := s.checker.WithThresholds(*th)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), err)
	}
	return chk, nil
}

package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/odiseo153/tailorcv/internal/export"
	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/ingestion"
	"github.com/odiseo153/tailorcv/internal/tailor"
)

// GenerateRequest is the body for POST /v1/cv.
type GenerateRequest struct {
	JobOffer       string `json:"job_offer" validate:"required"`
	CandidateInfo  string `json:"candidate_info,omitempty"`
	TemplateHTML   string `json:"template_html,omitempty"`
	TemplateID     string `json:"template_id,omitempty"`
	ExtraInfo      string `json:"extra_info,omitempty"`
	CareerField    string `json:"career_field,omitempty"`
	PhotoURL       string `json:"photo_url,omitempty" validate:"omitempty,url"`
	Language       string `json:"language,omitempty"`
	Provider       string `json:"provider,omitempty"`
	Model          string `json:"model,omitempty"`
}

// GenerateResponse is the body for a successful generation.
type GenerateResponse struct {
	RunID string `json:"run_id"`
	HTML  string `json:"html"`
}

// AnalyzeRequest is the body for POST /v1/analyze. Exactly one of CVText and
// CVHTML must be supplied.
type AnalyzeRequest struct {
	CVText   string `json:"cv_text,omitempty"`
	CVHTML   string `json:"cv_html,omitempty"`
	JobTitle string `json:"job_title" validate:"required"`
	Industry string `json:"industry" validate:"required"`
	Language string `json:"language,omitempty"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// ExportRequest is the body for POST /v1/export/pdf.
type ExportRequest struct {
	HTML string `json:"html" validate:"required"`
}

func (req *GenerateRequest) selector() *gateway.ModelSelector {
	if req.Provider == "" && req.Model == "" {
		return nil
	}
	return &gateway.ModelSelector{Provider: req.Provider, ModelID: req.Model}
}

func (req *AnalyzeRequest) selector() *gateway.ModelSelector {
	if req.Provider == "" && req.Model == "" {
		return nil
	}
	return &gateway.ModelSelector{Provider: req.Provider, ModelID: req.Model}
}

func (req *GenerateRequest) createInput() tailor.CreateInput {
	return tailor.CreateInput{
		Data:           req.JobOffer,
		Kind:           tailor.InputText,
		StructuredInfo: req.CandidateInfo,
		TemplateHTML:   req.TemplateHTML,
		TemplateID:     req.TemplateID,
		ExtraInfo:      req.ExtraInfo,
		CareerField:    req.CareerField,
		PhotoURL:       req.PhotoURL,
		Language:       req.Language,
		Selector:       req.selector(),
	}
}

// handleGenerate runs a synchronous CV generation.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.CreateCV(r.Context(), req.createInput(), nil)
	if err != nil {
		log.Printf("generation failed: %v", err)
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		RunID: uuid.New().String(),
		HTML:  result.HTML,
	})
}

// maxUploadSize bounds multipart uploads (PDFs and photos of CVs).
const maxUploadSize = 20 << 20

// handleGenerateFromFile runs a generation whose job offer and candidate info
// come from an uploaded document.
func (s *Server) handleGenerateFromFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	kind := tailor.InputKind(r.FormValue("type"))
	if kind != tailor.InputPDF && kind != tailor.InputImage {
		s.errorResponse(w, http.StatusBadRequest, `type must be "pdf" or "image"`)
		return
	}

	input := tailor.CreateInput{
		File:        file,
		Kind:        kind,
		TemplateID:  r.FormValue("template_id"),
		ExtraInfo:   r.FormValue("extra_info"),
		CareerField: r.FormValue("career_field"),
		PhotoURL:    r.FormValue("photo_url"),
		Language:    r.FormValue("language"),
	}

	if templateFile, _, tplErr := r.FormFile("template"); tplErr == nil {
		defer func() { _ = templateFile.Close() }()
		input.TemplateFile = templateFile
	}

	result, err := s.engine.CreateCV(r.Context(), input, nil)
	if err != nil {
		log.Printf("generation from file failed: %v", err)
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		RunID: uuid.New().String(),
		HTML:  result.HTML,
	})
}

// handleAnalyze scores a CV against a role.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if (req.CVText == "") == (req.CVHTML == "") {
		s.errorResponse(w, http.StatusBadRequest, "exactly one of cv_text and cv_html is required")
		return
	}

	cvText := req.CVText
	if req.CVHTML != "" {
		text, err := ingestion.HTMLToText(req.CVHTML)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "could not read cv_html: "+err.Error())
			return
		}
		cvText = text
	}

	result, err := s.engine.Analyze(r.Context(), tailor.AnalyzeInput{
		CVText:   cvText,
		JobTitle: req.JobTitle,
		Industry: req.Industry,
		Language: req.Language,
		Selector: req.selector(),
	}, nil)
	if err != nil {
		log.Printf("analysis failed: %v", err)
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleExportPDF renders generated HTML to a PDF download.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	pdf, err := export.ToPDF(r.Context(), req.HTML, export.DefaultTimeout)
	if err != nil {
		log.Printf("export failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cv.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// modelRequest mirrors the gateway's wire format for the hosted backend
// endpoint.
type modelRequest struct {
	Messages    []gateway.Message   `json:"messages"`
	Provider    string              `json:"provider,omitempty"`
	Model       string              `json:"model,omitempty"`
	Attachment  *gateway.Attachment `json:"attachment,omitempty"`
	Temperature *float32            `json:"temperature,omitempty"`
}

// handleModel hosts the backend model endpoint: it accepts role-tagged
// messages and returns the completion text.
func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	var req modelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Messages) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "messages is required")
		return
	}

	gwReq := gateway.Request{
		Messages:    req.Messages,
		Attachment:  req.Attachment,
		Temperature: req.Temperature,
	}
	if req.Provider != "" || req.Model != "" {
		gwReq.Selector = &gateway.ModelSelector{Provider: req.Provider, ModelID: req.Model}
	}

	content, err := s.model.Call(r.Context(), gwReq)
	if err != nil {
		log.Printf("model call failed: %v", err)
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"content": content})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

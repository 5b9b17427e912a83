package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-fit/internal/fitting"
	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/logging"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/pagination"
	"github.com/jonathan/resume-fit/internal/rendering"
	"github.com/jonathan/resume-fit/internal/types"
)

// LayoutRequest selects the paper and spacing to measure with. Empty fields
// use the server settings.
type LayoutRequest struct {
	Paper   string `json:"paper,omitempty"`
	Compact *bool  `json:"compact,omitempty"`
}

// PagesRequest represents the request body for /pages
type PagesRequest struct {
	Document json.RawMessage `json:"document"`
	LayoutRequest
}

// PagesResponse represents the response for /pages. Overflow is how far the
// content runs into its last page, as a fraction of a page.
type PagesResponse struct {
	TotalPages int     `json:"totalPages"`
	Height     float64 `json:"height"`
	PageHeight float64 `json:"pageHeight"`
	Paper      string  `json:"paper"`
	Overflow   float64 `json:"overflow"`
}

// ReduceRequest represents the request body for /reduce. When TotalPages is
// zero the document is measured first.
type ReduceRequest struct {
	Document   json.RawMessage `json:"document"`
	TotalPages int             `json:"totalPages,omitempty"`
	LayoutRequest
}

// ReduceResponse represents the response for /reduce
type ReduceResponse struct {
	Document *types.Document `json:"document"`
	Report   fitting.Report  `json:"report"`
}

// FitRequest represents the request body for /fit and /fit/stream
type FitRequest struct {
	Document      json.RawMessage `json:"document"`
	TargetPages   int             `json:"targetPages,omitempty"`
	MaxIterations int             `json:"maxIterations,omitempty"`
	LayoutRequest
}

// handlePages measures a document and reports its page count
func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	var req PagesRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	doc, layout, err := s.prepare(req.Document, req.LayoutRequest)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	pc, err := measure.Pages(r.Context(), s.measurer, doc, layout)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, PagesResponse{
		TotalPages: pc.TotalPages,
		Height:     pc.Height,
		PageHeight: layout.Profile.PageHeightUnits,
		Paper:      layout.Profile.Name,
		Overflow:   pagination.Overflow(pc.Height, layout.Profile),
	})
}

// handleReduce runs one reduction pass and returns the reduced copy
func (s *Server) handleReduce(w http.ResponseWriter, r *http.Request) {
	var req ReduceRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if req.TotalPages < 0 {
		s.failure(w, r, &ErrValidation{Field: "totalPages", Message: "must not be negative"})
		return
	}

	doc, layout, err := s.prepare(req.Document, req.LayoutRequest)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	pages := req.TotalPages
	if pages == 0 {
		pc, err := measure.Pages(r.Context(), s.measurer, doc, layout)
		if err != nil {
			s.failure(w, r, err)
			return
		}
		pages = pc.TotalPages
	}

	reduced, report := fitting.ReduceWithReport(doc, pages)
	s.jsonResponse(w, http.StatusOK, ReduceResponse{Document: reduced, Report: report})
}

// handleFit runs the measure/reduce loop to completion
func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	var req FitRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	doc, layout, opts, err := s.prepareFit(req)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := fitting.FitLoop(r.Context(), doc, s.measurer, layout, opts)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleFitStream runs the fit loop and streams each pass as an SSE event
func (s *Server) handleFitStream(w http.ResponseWriter, r *http.Request) {
	var req FitRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	doc, layout, opts, err := s.prepareFit(req)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger := logging.FromContext(r.Context())
	opts.OnIteration = func(it fitting.Iteration) {
		if err := sse.WriteEvent("iteration", it); err != nil {
			logger.Warn("Failed to write SSE event", "err", err)
		}
	}

	result, err := fitting.FitLoop(r.Context(), doc, s.measurer, layout, opts)
	if err != nil {
		if r.Context().Err() == nil {
			logger.Error("Fit failed", "err", err)
		}
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(result)
}

// prepare parses the document and resolves the layout for a request.
func (s *Server) prepare(raw json.RawMessage, lr LayoutRequest) (*types.Document, rendering.Layout, error) {
	doc, err := s.parseDocument(raw)
	if err != nil {
		return nil, rendering.Layout{}, err
	}
	layout, err := s.layout(lr)
	if err != nil {
		return nil, rendering.Layout{}, err
	}
	return doc, layout, nil
}

func (s *Server) prepareFit(req FitRequest) (*types.Document, rendering.Layout, fitting.FitOptions, error) {
	if req.TargetPages < 0 {
		return nil, rendering.Layout{}, fitting.FitOptions{}, &ErrValidation{Field: "targetPages", Message: "must not be negative"}
	}
	if req.MaxIterations < 0 {
		return nil, rendering.Layout{}, fitting.FitOptions{}, &ErrValidation{Field: "maxIterations", Message: "must not be negative"}
	}

	doc, layout, err := s.prepare(req.Document, req.LayoutRequest)
	if err != nil {
		return nil, rendering.Layout{}, fitting.FitOptions{}, err
	}

	opts := fitting.FitOptions{
		TargetPages:   s.settings.TargetPages,
		MaxIterations: s.settings.MaxIterations,
	}
	if req.TargetPages > 0 {
		opts.TargetPages = req.TargetPages
	}
	if req.MaxIterations > 0 {
		opts.MaxIterations = req.MaxIterations
	}
	return doc, layout, opts, nil
}

// parseDocument validates and normalizes a raw document.
func (s *Server) parseDocument(raw json.RawMessage) (*types.Document, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &ErrValidation{Field: "document", Message: "is required"}
	}
	return ingestion.ParseDocument(raw)
}

// layout resolves a request's paper and spacing against the server settings.
func (s *Server) layout(lr LayoutRequest) (rendering.Layout, error) {
	paper := lr.Paper
	if paper == "" {
		paper = s.settings.Paper
	}
	profile, err := geometry.Lookup(paper)
	if err != nil {
		return rendering.Layout{}, err
	}

	compact := s.settings.Compact
	if lr.Compact != nil {
		compact = *lr.Compact
	}
	return rendering.Layout{Profile: profile, Compact: compact}, nil
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platformeng/patternctl/internal/catalog"
	"github.com/platformeng/patternctl/internal/classifier"
	"github.com/platformeng/patternctl/internal/request"
	patternerrors "github.com/platformeng/patternctl/pkg/errors"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"catalog_version": catalog.Version,
	})
}

// handleDryRun validates a YAML submission and returns the batch plan. The
// status code mirrors batch validity: 200 when every document resolved, 400
// when any failed, with the full per-document breakdown either way.
func (s *Server) handleDryRun(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeBadRequest(w, fmt.Sprintf("Failed to read request body: %v", err))
		return
	}

	docs, err := request.Parse(body, "request")
	if err != nil {
		var parseErr *patternerrors.ParseError
		if errors.As(err, &parseErr) {
			s.writeBadRequest(w, parseErr.Error())
			return
		}
		s.writeBadRequest(w, fmt.Sprintf("Invalid YAML: %v", err))
		return
	}

	plan := s.validator.Validate(docs)

	s.log.WithFields(map[string]any{
		"plan_id":        plan.ID,
		"document_count": plan.DocumentCount,
		"valid":          plan.Valid,
	}).Info("dry run evaluated")

	status := http.StatusOK
	if !plan.Valid {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, plan)
}

type analyzeRequest struct {
	ProjectName string            `json:"project_name"`
	Files       []classifier.File `json:"files"`
	IncludeAll  bool              `json:"include_all"`
}

type analyzeResponse struct {
	ProjectName     string                      `json:"project_name,omitempty"`
	Recommendations []classifier.Recommendation `json:"recommendations"`
	CatalogVersion  string                      `json:"catalog_version"`
}

// handleAnalyze classifies a submitted file set. An empty file list is a
// valid request with an empty result, not an error.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		s.writeBadRequest(w, fmt.Sprintf("Invalid JSON: %v", err))
		return
	}

	var recommendations []classifier.Recommendation
	if req.IncludeAll {
		recommendations = s.classifier.ClassifyAll(req.Files)
	} else {
		recommendations = s.classifier.Classify(req.Files)
	}
	if recommendations == nil {
		recommendations = []classifier.Recommendation{}
	}

	s.writeJSON(w, http.StatusOK, analyzeResponse{
		ProjectName:     req.ProjectName,
		Recommendations: recommendations,
		CatalogVersion:  catalog.Version,
	})
}

type patternSummary struct {
	Name        string           `json:"name"`
	Category    catalog.Category `json:"category"`
	Description string           `json:"description"`
	Components  []string         `json:"components"`
}

type optionView struct {
	Type        string `json:"type"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

type patternDetail struct {
	patternSummary

	UseCases       []string              `json:"use_cases,omitempty"`
	RequiredFields []string              `json:"required_fields"`
	OptionalFields map[string]optionView `json:"optional_fields,omitempty"`
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	patterns := s.catalog.Patterns()
	summaries := make([]patternSummary, 0, len(patterns))
	for _, def := range patterns {
		summaries = append(summaries, summarize(def))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"catalog_version": catalog.Version,
		"patterns":        summaries,
	})
}

func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	def, err := s.catalog.Lookup(name)
	if err != nil {
		var nf *patternerrors.NotFoundError
		if errors.As(err, &nf) {
			s.writeNotFound(w, fmt.Sprintf("Unknown pattern: %s", name), map[string]any{
				"available": s.catalog.ValidNames(),
			})
			return
		}
		s.writeError(w, "INTERNAL_ERROR", err.Error(), http.StatusInternalServerError, nil)
		return
	}

	detail := patternDetail{
		patternSummary: summarize(def),
		UseCases:       def.UseCases,
		RequiredFields: def.Config.Required,
	}
	if len(def.Config.Optional) > 0 {
		detail.OptionalFields = make(map[string]optionView, len(def.Config.Optional))
		for key, opt := range def.Config.Optional {
			detail.OptionalFields[key] = optionView{
				Type:        opt.Type,
				Default:     opt.Default,
				Description: opt.Description,
			}
		}
	}

	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCatalogVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"version":       catalog.Version,
		"pattern_count": len(s.catalog.Patterns()),
	})
}

func summarize(def *catalog.PatternDefinition) patternSummary {
	return patternSummary{
		Name:        def.Name,
		Category:    def.Category,
		Description: def.Description,
		Components:  def.Components,
	}
}

package httpapi

import (
	"net/http"

	"github.com/cooltech/alex/internal/catalog"
)

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   catalog.CatalogStats(),
	})
}

// securityFeatures is the marketing-facing summary of the safety pipeline.
var securityFeatures = map[string][]string{
	"Input Validation": {
		"PII Detection & Blocking",
		"Toxic Language Prevention",
		"Confidential Query Detection",
		"Creative Response Variation",
	},
	"Output Protection": {
		"PII Scrubbing",
		"Safe Response Guarantee",
		"No Confidential Data Leakage",
		"Varied Decline Messages",
	},
	"Conversation Quality": {
		"Context-Aware Responses",
		"Personality-Driven Interactions",
		"Natural Language Variation",
		"Empathetic Communication",
	},
	"Compliance": {
		"GDPR-Compliant",
		"Data Privacy Protection",
		"Audit Trail Ready",
		"Enterprise-Grade Security",
	},
}

func (s *Server) handleSecurityFeatures(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":                "success",
		"security_features":     securityFeatures,
		"pii_detection":         true,
		"toxic_language_filter": true,
		"creative_responses":    true,
	})
}

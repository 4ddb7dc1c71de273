// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/lead-engine/internal/discover"
	"github.com/pdiddy/lead-engine/internal/extract"
	"github.com/pdiddy/lead-engine/internal/links"
	"github.com/pdiddy/lead-engine/internal/pattern"
	"github.com/pdiddy/lead-engine/pkg/types"
)

type handler struct {
	deps Deps
}

type verifyRequest struct {
	Email string `json:"email" binding:"required"`
}

type extractRequest struct {
	Snippets []string `json:"snippets" binding:"required"`
}

type generateRequest struct {
	Patterns   []types.EmailPattern `json:"patterns" binding:"required"`
	PersonName string               `json:"person_name" binding:"required"`

	// Thresholds is "extraction" (default) or "cached".
	Thresholds string `json:"thresholds"`
}

type classifyRequest struct {
	URLs        []string `json:"urls" binding:"required"`
	CompanyName string   `json:"company_name" binding:"required"`
	LinkedInURL string   `json:"linkedin_url"`
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":      err.Error(),
		"request_id": GetRequestID(c),
	})
}

func (h *handler) discover(c *gin.Context) {
	var req types.DiscoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.deps.Discoverer.Discover(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case eris.Is(err, discover.ErrInvalidInput):
		badRequest(c, err)
	default:
		_ = c.Error(err)
		zap.L().Error("discover failed",
			zap.String("request_id", GetRequestID(c)),
			zap.String("error", eris.ToString(err, true)))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      "discovery failed",
			"request_id": GetRequestID(c),
		})
	}
}

func (h *handler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.deps.Verifier.Verify(c.Request.Context(), strings.TrimSpace(req.Email)))
}

func (h *handler) extractPatterns(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	patterns := extract.Patterns(req.Snippets)
	if patterns == nil {
		patterns = []types.EmailPattern{}
	}
	c.JSON(http.StatusOK, gin.H{"patterns": patterns})
}

func (h *handler) generatePatterns(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	th := pattern.ExtractionThresholds
	switch strings.ToLower(req.Thresholds) {
	case "", "extraction":
	case "cached":
		th = pattern.CachedThresholds
	default:
		badRequest(c, eris.Errorf("unknown thresholds %q", req.Thresholds))
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": pattern.Generate(req.Patterns, req.PersonName, th)})
}

func (h *handler) classifyLinks(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links.ClassifyAll(req.URLs, req.CompanyName, req.LinkedInURL)})
}

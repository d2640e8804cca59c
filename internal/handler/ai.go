package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/flatwalay/backend/internal/model"
	"github.com/flatwalay/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) parseProfile(c *gin.Context) {
	var req model.ParseProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	profile, source, err := h.extractor.Parse(c.Request.Context(), req.RawProfileText)
	if err != nil {
		h.log.Error("profile extraction failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to parse profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile, "source": source})
}

func (h *Handler) scoreMatch(c *gin.Context) {
	var req model.PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	a, b, err := h.resolvePair(c, &req)
	if err != nil {
		return
	}

	score, source, err := h.scorer.Score(c.Request.Context(), a, b)
	if err != nil {
		h.log.Error("pair scoring failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to score match")
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": score.Score, "reasons": score.Reasons, "source": source})
}

func (h *Handler) bestMatches(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.log.Error("user lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to find matches")
		return
	}
	if user.ProfileID == nil || *user.ProfileID == "" {
		errorJSON(c, http.StatusBadRequest, "user has no profile")
		return
	}

	target, err := h.repo.GetProfileByID(c.Request.Context(), *user.ProfileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "profile not found")
			return
		}
		h.log.Error("profile lookup failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to find matches")
		return
	}

	profiles, err := h.repo.ListProfiles(c.Request.Context())
	if err != nil {
		h.log.Error("profile list failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to find matches")
		return
	}

	candidates := make([]model.ProfileDocument, 0, len(profiles))
	for i := range profiles {
		candidates = append(candidates, model.DocumentFromProfile(&profiles[i]))
	}

	matches := h.scorer.BestMatches(model.DocumentFromProfile(target), candidates, h.topN(c))
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (h *Handler) detectConflicts(c *gin.Context) {
	var req model.PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	a, b, err := h.resolvePair(c, &req)
	if err != nil {
		return
	}

	report, source, err := h.conflicts.Detect(c.Request.Context(), a, b)
	if err != nil {
		h.log.Error("conflict detection failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to detect conflicts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pair_id": report.PairID, "red_flags": report.RedFlags, "source": source})
}

func (h *Handler) topHousingMatches(c *gin.Context) {
	var req model.HousingMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	profiles := req.Profiles
	for _, id := range req.ProfileIDs {
		stored, err := h.repo.GetProfileByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				errorJSON(c, http.StatusNotFound, fmt.Sprintf("profile %s not found", id))
				return
			}
			h.log.Error("profile lookup failed", zap.Error(err))
			errorJSON(c, http.StatusInternalServerError, "failed to match housing")
			return
		}
		profiles = append(profiles, model.DocumentFromProfile(stored))
	}

	if len(profiles) == 0 {
		errorJSON(c, http.StatusBadRequest, "at least one profile is required")
		return
	}

	listings, err := h.repo.ListListings(c.Request.Context(), true)
	if err != nil {
		h.log.Error("listing list failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to match housing")
		return
	}

	matches := h.hunter.TopMatches(c.Request.Context(), profiles, listings, h.topN(c), req.PolishReasons)
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (h *Handler) generateExplanation(c *gin.Context) {
	var req model.ExplanationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.MatchScore < 0 || req.MatchScore > 100 {
		errorJSON(c, http.StatusBadRequest, "match_score must be in [0, 100]")
		return
	}

	explanation, source, err := h.explainer.Explain(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("explanation generation failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "failed to generate explanation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary_explanation":   explanation.SummaryExplanation,
		"negotiation_checklist": explanation.NegotiationChecklist,
		"source":                source,
	})
}

// resolvePair materializes both profiles of a pair request, fetching stored
// profiles when ids are given. Writes the error response itself.
func (h *Handler) resolvePair(c *gin.Context, req *model.PairRequest) (model.ProfileDocument, model.ProfileDocument, error) {
	resolve := func(id string, inline *model.ProfileDocument) (model.ProfileDocument, error) {
		if inline != nil {
			return *inline, nil
		}
		if id == "" {
			errorJSON(c, http.StatusBadRequest, "each profile needs a document or an id")
			return model.ProfileDocument{}, errors.New("missing profile")
		}
		stored, err := h.repo.GetProfileByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				errorJSON(c, http.StatusNotFound, fmt.Sprintf("profile %s not found", id))
			} else {
				h.log.Error("profile lookup failed", zap.Error(err))
				errorJSON(c, http.StatusInternalServerError, "failed to resolve profiles")
			}
			return model.ProfileDocument{}, err
		}
		return model.DocumentFromProfile(stored), nil
	}

	a, err := resolve(req.ProfileAID, req.ProfileA)
	if err != nil {
		return a, model.ProfileDocument{}, err
	}
	b, err := resolve(req.ProfileBID, req.ProfileB)
	return a, b, err
}

func (h *Handler) topN(c *gin.Context) int {
	n := h.cfg.Match.DefaultTopN
	if raw := c.Query("top_n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}
	if n > h.cfg.Match.MaxTopN {
		n = h.cfg.Match.MaxTopN
	}
	return n
}

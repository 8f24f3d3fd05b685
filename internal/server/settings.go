package server

import (
	"net/http"
	"strconv"

	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
	"github.com/gin-gonic/gin"
)

// GetSettings returns the resolved settings for a store scope together with
// the override flags the scope carries itself.
func (s *Server) GetSettings(c *gin.Context) {
	storeID, err := storeScope(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	settings, err := s.settingsSvc.Load(ctx, storeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	overrides, err := s.settingsSvc.Overrides(ctx, storeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"store_id":  storeID,
		"settings":  settings,
		"overrides": overrides,
	}})
}

type saveSettingsRequest struct {
	Settings  settingsdomain.Settings  `json:"settings"`
	Overrides settingsdomain.Overrides `json:"overrides"`
}

// SaveSettings writes settings for a store scope. For a non-default scope
// only the flagged fields are stored.
func (s *Server) SaveSettings(c *gin.Context) {
	storeID, err := storeScope(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req saveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.settingsSvc.Save(c.Request.Context(), storeID, req.Settings, req.Overrides); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func storeScope(c *gin.Context) (int64, error) {
	raw := c.DefaultQuery("store_id", "0")
	storeID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || storeID < 0 {
		return 0, newValidationError("store_id", "invalid", "store_id must be a non-negative integer")
	}
	return storeID, nil
}

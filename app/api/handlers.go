package api

import (
	"html"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gui-Oba/FocusAid/app/cfg"
	"github.com/Gui-Oba/FocusAid/app/database"
	"github.com/Gui-Oba/FocusAid/app/match"
)

func NewHandler(eng EngineInterface, passRepo database.PassRepository,
	loader ListLoaderInterface) *Handler {
	appCfg := cfg.Get()
	return &Handler{
		engine:             eng,
		passRepo:           passRepo,
		loader:             loader,
		allowSource:        appCfg.AllowList,
		reclassifyOnReload: appCfg.ReclassifyOnReload,
		startedAt:          time.Now(),
	}
}

// GetPage serves the current filtered snapshot.
func (h *Handler) GetPage(c *gin.Context) {
	page, err := h.engine.Render()
	if err != nil {
		slog.Error("Page render error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Allowed-Entries", strconv.Itoa(h.engine.AllowedCount()))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// GetAllowed renders the allow list as a read-only display surface. It
// re-fetches the list independently of the engine and owns no
// processing state.
func (h *Handler) GetAllowed(c *gin.Context) {
	lines := h.loader.RunFailClosed(c.Request.Context(), h.allowSource)
	entries := match.NormalizeLines(lines)
	sort.Strings(entries)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><title>Allowed accounts</title></head>\n<body>\n")
	if len(entries) == 0 {
		b.WriteString("<p>No allowed accounts configured.</p>\n")
	} else {
		b.WriteString("<ul>\n")
		for _, entry := range entries {
			b.WriteString("<li>@")
			b.WriteString(html.EscapeString(entry))
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</body>\n</html>\n")

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":          "ok",
		"version":         cfg.Get().Version,
		"timestamp":       time.Now().In(time.Local).Format(time.RFC3339),
		"uptime":          time.Since(h.startedAt).String(),
		"allowed_entries": h.engine.AllowedCount(),
		"tracked_items":   h.engine.TrackedItems(),
	}

	if count, err := h.passRepo.GetPassCount(); err == nil {
		health["passes"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	count, err := h.passRepo.GetPassCount()
	if err != nil {
		slog.Error("Database error", "operation", "pass_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	recent, err := h.passRepo.GetRecentPasses(20)
	if err != nil {
		slog.Error("Database error", "operation", "recent_passes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	passes := make([]map[string]interface{}, 0, len(recent))
	for _, pass := range recent {
		passes = append(passes, map[string]interface{}{
			"id":          pass.ID,
			"trigger":     pass.Trigger,
			"candidates":  pass.Candidates,
			"revealed":    pass.Revealed,
			"hidden":      pass.Hidden,
			"unknown":     pass.Unknown,
			"skipped":     pass.Skipped,
			"retried":     pass.Retried,
			"duration_ms": pass.DurationMs,
			"created_at":  pass.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"total_passes":  count,
		"recent_passes": passes,
	})
}

// APIReloadList re-fetches the allow list and swaps it in, then runs
// one pass against the new set. The reclassify query parameter
// overrides the configured default for this call.
func (h *Handler) APIReloadList(c *gin.Context) {
	lines, err := h.loader.Run(c.Request.Context(), h.allowSource)
	if err != nil {
		// Fail closed: an unreadable list hides content, it never leaks it.
		slog.Error("List reload failed, substituting empty list", "source", h.allowSource, "error", err)
		lines = nil
	}

	reclassify := h.reclassifyOnReload
	if raw, ok := c.GetQuery("reclassify"); ok {
		if parsed, parseErr := strconv.ParseBool(raw); parseErr == nil {
			reclassify = parsed
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reclassify parameter"})
			return
		}
	}

	h.engine.Reload(lines, reclassify)
	stats := h.engine.RunPass("reload")

	c.JSON(http.StatusOK, gin.H{
		"message":         "List reloaded",
		"allowed_entries": h.engine.AllowedCount(),
		"reclassify":      reclassify,
		"pass": gin.H{
			"candidates": stats.Candidates,
			"revealed":   stats.Revealed,
			"hidden":     stats.Hidden,
			"unknown":    stats.Unknown,
		},
	})
}

// APIRescan forces one pass outside the debounce path.
func (h *Handler) APIRescan(c *gin.Context) {
	stats := h.engine.RunPass("manual")

	c.JSON(http.StatusOK, gin.H{
		"message":    "Pass completed",
		"candidates": stats.Candidates,
		"revealed":   stats.Revealed,
		"hidden":     stats.Hidden,
		"unknown":    stats.Unknown,
		"skipped":    stats.Skipped,
		"retried":    stats.Retried,
	})
}

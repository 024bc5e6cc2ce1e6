package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"jelly/internal/config"
	"jelly/internal/services"

	"github.com/gin-gonic/gin"
)

const flashCookie = "jelly_flash"

// SettingsController reads and writes the persisted dashboard settings
type SettingsController struct {
	store *config.Store
	flash *services.FlashSigner
	hub   *services.WebSocketHub
}

// NewSettingsController wires the settings handlers. hub may be nil.
func NewSettingsController(store *config.Store, flash *services.FlashSigner, hub *services.WebSocketHub) *SettingsController {
	return &SettingsController{store: store, flash: flash, hub: hub}
}

// SetNetInterface handles {iface: string|null, baseline_mbps: number}.
// A non-string iface selects the aggregate; a missing or unusable baseline
// keeps the configured one.
func (sc *SettingsController) SetNetInterface(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid-json"})
		return
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid-json"})
		return
	}

	var iface *string
	if name, ok := data["iface"].(string); ok && name != "" {
		iface = &name
	}

	cfg, err := sc.store.Update(func(cfg *config.Config) {
		cfg.NetInterface = iface
		if baseline, ok := parseBaseline(data["baseline_mbps"]); ok {
			cfg.NetBaselineMbps = baseline
		}
	})
	if err != nil {
		log.WithError(err).Error("Could not save network selection")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "save-failed"})
		return
	}

	sc.broadcast(cfg)
	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"iface":         cfg.NetInterface,
		"baseline_mbps": cfg.NetBaselineMbps,
	})
}

// ShowSettings renders the settings page with any pending flash message
func (sc *SettingsController) ShowSettings(c *gin.Context) {
	cfg := loadOrDefault(sc.store)

	var flash *services.Flash
	if token, err := c.Cookie(flashCookie); err == nil && token != "" {
		if flash, err = sc.flash.Verify(token); err != nil {
			log.WithError(err).Debug("Discarding unreadable flash cookie")
			flash = nil
		}
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}

	c.HTML(http.StatusOK, "settings.html", gin.H{
		"config": cfg,
		"flash":  flash,
	})
}

// SaveSettings applies the settings form. Network fields are only changed when
// the form carries them; unparseable numbers keep their current values.
func (sc *SettingsController) SaveSettings(c *gin.Context) {
	cfg, err := sc.store.Update(func(cfg *config.Config) {
		if host, ok := c.GetPostForm("host"); ok {
			cfg.Host = host
		}
		if port, ok := c.GetPostForm("port"); ok {
			if p, err := strconv.Atoi(strings.TrimSpace(port)); err == nil && p > 0 {
				cfg.Port = p
			}
		}
		if display, ok := c.GetPostForm("display"); ok {
			cfg.Display = display
		}
		if timeFormat, ok := c.GetPostForm("time_format"); ok {
			cfg.TimeFormat = timeFormat
		}
		cfg.ShowUpdateTime = c.PostForm("show_update_time") == "on"
		if theme, ok := c.GetPostForm("theme"); ok {
			cfg.Theme = theme
		}
		if name, ok := c.GetPostForm("net-interface"); ok {
			if name == "" {
				cfg.NetInterface = nil
			} else {
				cfg.NetInterface = &name
			}
		}
		if baseline, ok := c.GetPostForm("net-baseline"); ok {
			if b, ok := parseBaseline(baseline); ok {
				cfg.NetBaselineMbps = b
			}
		}
	})
	if err != nil {
		log.WithError(err).Error("Could not save settings")
		sc.setFlash(c, services.Flash{Message: "Settings could not be saved.", Category: "error"})
		c.Redirect(http.StatusSeeOther, "/settings")
		return
	}

	sc.broadcast(cfg)
	sc.setFlash(c, services.Flash{Message: "Settings saved successfully.", Category: "success"})
	c.Redirect(http.StatusSeeOther, "/settings")
}

func (sc *SettingsController) setFlash(c *gin.Context, flash services.Flash) {
	token, err := sc.flash.Sign(flash)
	if err != nil {
		log.WithError(err).Warn("Could not sign flash message")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, token, 300, "/", "", false, true)
}

func (sc *SettingsController) broadcast(cfg *config.Config) {
	if sc.hub == nil {
		return
	}
	sc.hub.Broadcast(services.WebSocketMessage{
		Type: "settings",
		Data: gin.H{
			"selected_interface": cfg.NetInterface,
			"baseline_mbps":      cfg.NetBaselineMbps,
			"theme":              cfg.Theme,
			"display":            cfg.Display,
		},
	})
}

// parseBaseline accepts JSON numbers and numeric strings. Only positive
// integers are usable.
func parseBaseline(v interface{}) (int, bool) {
	var n int
	switch b := v.(type) {
	case float64:
		n = int(b)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(b))
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}

func loadOrDefault(store *config.Store) *config.Config {
	cfg, err := store.Load()
	if err != nil {
		log.WithError(err).Warn("Could not load settings, using defaults")
		return config.Default()
	}
	return cfg
}

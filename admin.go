// admin.go - operator area for the visit ledger
package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/Zachkp/portfolio/internal/visitor"
)

const (
	adminCookie      = "admin_token"
	adminTokenHeader = "X-Admin-Token"
	adminSessionTTL  = 3600 * 24

	// Five login attempts, then one more every twelve seconds.
	loginBurst    = 5
	loginInterval = 12 * time.Second
)

type AdminStats struct {
	Count     int64    `json:"count"`
	Visitors  []string `json:"visitors"`
	Backend   string   `json:"backend"`
	WriteMode string   `json:"writeMode"`
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// adminAuth holds the operator credentials, the session token and the
// per-client login limiters.
type adminAuth struct {
	username string
	password string
	token    string

	// logHasher keeps client addresses out of the logs.
	logHasher *visitor.Hasher
	limiters  *cache.Cache
}

func newAdminAuth(cfg *Config) *adminAuth {
	token := cfg.AdminToken
	if token == "" {
		token = generateAdminToken()
	}

	a := &adminAuth{
		username:  cfg.AdminUsername,
		password:  cfg.AdminPassword,
		token:     token,
		logHasher: visitor.NewHasher(generateAdminToken()),
		limiters:  cache.New(10*time.Minute, 15*time.Minute),
	}

	if gin.Mode() == gin.DebugMode {
		if cfg.defaultAdminCredentials {
			log.Println("WARNING: Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD environment variables.")
		}
		if cfg.AdminToken == "" {
			log.Printf("Admin token (dev only): %s", token)
		}
	}
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for the logs (consistent per IP for the life of the process)
func (a *adminAuth) hashIP(ip string) string {
	return a.logHasher.Hash(ip)
}

func (a *adminAuth) validToken(token string) bool {
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) == 1
}

// authenticated accepts the session cookie or the token header.
func (a *adminAuth) authenticated(c *gin.Context) bool {
	if token, err := c.Cookie(adminCookie); err == nil && a.validToken(token) {
		return true
	}
	return a.validToken(c.GetHeader(adminTokenHeader))
}

func (a *adminAuth) validCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// requireToken guards JSON endpoints.
func (a *adminAuth) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticated(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false})
			return
		}
		c.Next()
	}
}

// requireSession guards pages, sending anonymous users to the login form.
func (a *adminAuth) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticated(c) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// allowLogin reports whether ip may try another login right now.
func (a *adminAuth) allowLogin(ip string) bool {
	key := a.hashIP(ip)
	// Add fails when another request created the limiter first.
	_ = a.limiters.Add(key, rate.NewLimiter(rate.Every(loginInterval), loginBurst), cache.DefaultExpiration)

	v, ok := a.limiters.Get(key)
	if !ok {
		return true
	}
	return v.(*rate.Limiter).Allow()
}

// stats snapshots the ledger for the dashboard and the export.
func (a *app) stats(c *gin.Context) (*AdminStats, error) {
	snap, err := a.ledger.Snapshot(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		Count:     snap.Count,
		Visitors:  snap.Visitors,
		Backend:   a.cfg.LedgerBackend,
		WriteMode: string(a.ledger.Mode()),
	}, nil
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, a *app) {
	auth := a.admin

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		client := auth.hashIP(c.ClientIP())

		if !auth.allowLogin(c.ClientIP()) {
			log.Printf("Admin login rate limited for %s", client)
			c.HTML(http.StatusTooManyRequests, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Too many attempts, try again later",
			})
			return
		}

		var form loginForm
		if err := c.ShouldBind(&form); err != nil {
			c.HTML(http.StatusBadRequest, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Username and password are required",
			})
			return
		}

		if !auth.validCredentials(form.Username, form.Password) {
			log.Printf("Failed admin login attempt from %s", client)
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		// Set secure cookie (24 hours)
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, auth.token, adminSessionTTL, "/", "", !a.cfg.IsDevelopment(), true)
		log.Printf("Admin login successful from %s", client)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/", "", !a.cfg.IsDevelopment(), true)
		log.Printf("Admin logout from %s", auth.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Admin dashboard
	r.GET("/admin/dashboard", auth.requireSession(), func(c *gin.Context) {
		stats, err := a.stats(c)
		if err != nil {
			_ = c.Error(err)
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-dashboard.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	// Protected JSON endpoints
	api := r.Group("/admin")
	api.Use(auth.requireToken())

	api.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.stats(c)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	api.POST("/api/visits/reset", a.resetLedger)

	// Ledger export (for backups)
	api.GET("/export/ledger", func(c *gin.Context) {
		snap, err := a.ledger.Snapshot(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ledger"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=visits.json")
		log.Printf("Visit ledger exported by %s", auth.hashIP(c.ClientIP()))
		c.IndentedJSON(http.StatusOK, snap)
	})
}

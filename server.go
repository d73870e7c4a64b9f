package main

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/github"
	"github.com/Zachkp/portfolio/internal/ledger"
	"github.com/Zachkp/portfolio/internal/visitor"
)

//go:embed templates/*.html
var templatesFS embed.FS

// app wires the configuration, the visit ledger and the admin area together.
type app struct {
	cfg     *Config
	ledger  *ledger.Service
	mode    visitor.Mode
	hasher  *visitor.Hasher
	admin   *adminAuth
	github  *github.Client
	content Content
}

func newApp(cfg *Config, svc *ledger.Service) *app {
	return &app{
		cfg:     cfg,
		ledger:  svc,
		mode:    cfg.Mode(),
		hasher:  visitor.NewHasher(cfg.VisitorHashSalt),
		admin:   newAdminAuth(cfg),
		github:  newGitHubClient(cfg),
		content: siteContent,
	}
}

// visitorIdentity derives the ledger key for the request.
func (a *app) visitorIdentity(r *http.Request) string {
	return a.hasher.Hash(visitor.Identity(r.Header, a.mode))
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.Use(canonicalLogger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))

	// Home page route
	r.GET("/", func(c *gin.Context) {
		locale := c.Query("locale")
		if locale == "" {
			locale = c.GetHeader("Accept-Language")
		}
		c.HTML(http.StatusOK, "index.html", gin.H{
			"content": a.content.Localize(locale),
			"github":  a.github != nil,
			"ghText":  githubLabels(locale),
		})
	})

	r.GET("/api/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.content.Localize(c.Query("locale")))
	})

	r.GET("/cv.pdf", func(c *gin.Context) {
		locale := normalizeLocale(c.Query("locale"))

		var buf bytes.Buffer
		if err := WriteResume(&buf, a.content, locale); err != nil {
			_ = c.Error(err)
			log.Printf("Error generating resume: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate resume"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+resumeFilename(locale))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	})

	r.GET("/api/github", a.githubActivity)
	r.GET("/api/visit", a.recordVisit)
	r.DELETE("/api/visit", a.admin.requireToken(), a.resetLedger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	setupAdminRoutes(r, a)
	return r
}

// recordVisit counts the caller once per identity and returns the total.
// Storage failures are logged and answered with a zero count so the page
// still renders.
func (a *app) recordVisit(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	res, err := a.ledger.RecordVisit(c.Request.Context(), a.visitorIdentity(c.Request))
	if err != nil {
		_ = c.Error(err)
		log.Printf("Error recording visit: %v", err)
		c.JSON(http.StatusInternalServerError, ledger.Result{Count: 0, IsNewVisitor: false})
		return
	}
	c.JSON(http.StatusOK, res)
}

// resetLedger wipes the ledger. Operator only.
func (a *app) resetLedger(c *gin.Context) {
	if err := a.ledger.Reset(c.Request.Context()); err != nil {
		_ = c.Error(err)
		log.Printf("Error resetting visit ledger: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	log.Printf("Visit ledger reset by admin from %s", a.admin.hashIP(c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/github"
)

type githubRepoView struct {
	github.Repo
	Updated string `json:"updated"`
}

type githubView struct {
	Username   string           `json:"username"`
	ProfileURL string           `json:"profileUrl"`
	Stats      github.Stats     `json:"stats"`
	Repos      []githubRepoView `json:"repos"`
}

func newGitHubClient(cfg *Config) *github.Client {
	if cfg.GitHubUser == "" {
		return nil
	}
	return github.New(cfg.GitHubUser,
		github.WithBaseURL(cfg.GitHubAPIURL),
		github.WithToken(cfg.GitHubToken))
}

// githubActivity serves the cached profile summary. Failures are logged and
// answered with 503 so the page can leave the section out.
func (a *app) githubActivity(c *gin.Context) {
	if a.github == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "GitHub activity disabled"})
		return
	}

	act, err := a.github.Activity(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		log.Printf("Error loading GitHub activity: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GitHub activity unavailable"})
		return
	}

	locale := normalizeLocale(c.Query("locale"))
	now := time.Now()
	view := githubView{
		Username:   act.Username,
		ProfileURL: act.ProfileURL,
		Stats:      act.Stats,
		Repos:      make([]githubRepoView, 0, len(act.Repos)),
	}
	for _, r := range act.Repos {
		view.Repos = append(view.Repos, githubRepoView{Repo: r, Updated: github.RelativeDate(r.UpdatedAt, now, locale)})
	}
	c.JSON(http.StatusOK, view)
}

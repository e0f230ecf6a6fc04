package handler

import (
	"encoding/xml"

	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/service"
)

// SitemapHandler serves /sitemap.xml.
type SitemapHandler struct {
	sitemapService *service.SitemapService
}

// NewSitemapHandler constructs a SitemapHandler.
func NewSitemapHandler(sitemapService *service.SitemapService) *SitemapHandler {
	return &SitemapHandler{sitemapService: sitemapService}
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// GetSitemap handles GET /sitemap.xml
func (h *SitemapHandler) GetSitemap(c *gin.Context) {
	entries, err := h.sitemapService.Entries()
	if err != nil {
		c.String(500, "sitemap unavailable")
		return
	}

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        e.Loc,
			LastMod:    e.LastMod.Format("2006-01-02"),
			ChangeFreq: e.ChangeFreq,
			Priority:   e.Priority,
		})
	}

	c.XML(200, set)
}

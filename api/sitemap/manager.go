package sitemap

import (
	"encoding/xml"
	"net/http"

	"saraylidoener_server/structs"

	"github.com/go-chi/chi/v5"
)

// locales and pages mirror the storefront routing; the sitemap is the cross
// product of the two.
var (
	locales = []string{"de", "en", "tr"}
	pages   = []string{"", "speisekarte", "galerie", "kontakt", "impressum", "datenschutz"}
)

type SitemapRoutesManager struct {
	cfg *structs.Config
}

func NewSitemapRoutesManager(cfg *structs.Config) *SitemapRoutesManager {
	return &SitemapRoutesManager{cfg: cfg}
}

func (srm *SitemapRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/sitemap.xml", srm.GetSitemap)
}

type urlEntry struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// GetSitemap serves the fixed locale-prefixed URL list.
func (srm *SitemapRoutesManager) GetSitemap(w http.ResponseWriter, r *http.Request) {
	base := srm.cfg.Server.PublicBaseURL

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]urlEntry, 0, len(locales)*len(pages)),
	}
	for _, locale := range locales {
		for _, page := range pages {
			loc := base + "/" + locale
			if page != "" {
				loc += "/" + page
			}
			set.URLs = append(set.URLs, urlEntry{Loc: loc})
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	encoder.Encode(set)
}

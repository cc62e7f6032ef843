package domain

import (
	"slices"
	"strings"
)

// SiteKey identifies a supported marketplace, e.g. MERCADO_LIVRE.
type SiteKey string

// Supported marketplaces.
const (
	SiteMercadoLivre SiteKey = "MERCADO_LIVRE"
	SiteOLX          SiteKey = "OLX"
	SiteWebmotors    SiteKey = "WEBMOTORS"
	SiteICarros      SiteKey = "ICARROS"
	SiteZapImoveis   SiteKey = "ZAP_IMOVEIS"
	SiteVivaReal     SiteKey = "VIVA_REAL"
	SiteImovelweb    SiteKey = "IMOVELWEB"
)

// Site describes a marketplace whose browser session can be stored.
type Site struct {
	Key         SiteKey
	DisplayName string
	// Domains lists the cookie domains of the site; the first one is canonical.
	Domains []string
}

// Domain returns the canonical domain of the site.
func (s Site) Domain() string {
	if len(s.Domains) == 0 {
		return ""
	}
	return s.Domains[0]
}

var siteRegistry = map[SiteKey]Site{
	SiteMercadoLivre: {
		Key:         SiteMercadoLivre,
		DisplayName: "Mercado Livre",
		Domains:     []string{"mercadolivre.com.br", "mercadolibre.com"},
	},
	SiteOLX: {
		Key:         SiteOLX,
		DisplayName: "OLX",
		Domains:     []string{"olx.com.br"},
	},
	SiteWebmotors: {
		Key:         SiteWebmotors,
		DisplayName: "Webmotors",
		Domains:     []string{"webmotors.com.br"},
	},
	SiteICarros: {
		Key:         SiteICarros,
		DisplayName: "iCarros",
		Domains:     []string{"icarros.com.br"},
	},
	SiteZapImoveis: {
		Key:         SiteZapImoveis,
		DisplayName: "ZAP Imóveis",
		Domains:     []string{"zapimoveis.com.br"},
	},
	SiteVivaReal: {
		Key:         SiteVivaReal,
		DisplayName: "VivaReal",
		Domains:     []string{"vivareal.com.br"},
	},
	SiteImovelweb: {
		Key:         SiteImovelweb,
		DisplayName: "Imovelweb",
		Domains:     []string{"imovelweb.com.br"},
	},
}

// LookupSite returns the registered site for key. Keys are matched case-insensitively.
func LookupSite(key string) (Site, error) {
	site, ok := siteRegistry[SiteKey(strings.ToUpper(strings.TrimSpace(key)))]
	if !ok {
		return Site{}, ErrUnsupportedSite
	}
	return site, nil
}

// Sites returns every registered site ordered by key.
func Sites() []Site {
	sites := make([]Site, 0, len(siteRegistry))
	for _, site := range siteRegistry {
		sites = append(sites, site)
	}
	slices.SortFunc(sites, func(a, b Site) int {
		return strings.Compare(string(a.Key), string(b.Key))
	})
	return sites
}

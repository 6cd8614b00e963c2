package server

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SitemapResponse lists the API's endpoints.
type SitemapResponse struct {
	Msg       string   `json:"msg"`
	Endpoints []string `json:"endpoints"`
}

// Sitemap handles GET /
// @Summary List endpoints
// @Description Every registered GET route without path parameters.
// @Tags meta
// @Produce json
// @Success 200 {object} SitemapResponse
// @Router / [get]
func (s *Server) Sitemap(c *fiber.Ctx) error {
	seen := map[string]struct{}{}
	endpoints := []string{}
	for _, route := range c.App().GetRoutes(true) {
		if route.Method != fiber.MethodGet || route.Path == "/" {
			continue
		}
		p := strings.TrimRight(route.Path, "/")
		if p == "" || strings.ContainsAny(p, ":*") {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		endpoints = append(endpoints, p)
	}
	sort.Strings(endpoints)

	return c.JSON(SitemapResponse{
		Msg:       "Welcome to the Holocron API",
		Endpoints: endpoints,
	})
}

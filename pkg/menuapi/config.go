package menuapi

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// RouteStyle selects the path used for the products-by-subcategory endpoint.
// Deployments of the backend disagree on it.
type RouteStyle string

const (
	RouteCat      RouteStyle = "cat"      // GET /product/cat/{id}
	RouteBySubCat RouteStyle = "bysubcat" // GET /product/bysubcat/{id}
)

// ParseRouteStyle maps a config string to a RouteStyle. Empty means RouteCat.
func ParseRouteStyle(s string) (RouteStyle, error) {
	switch RouteStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", RouteCat:
		return RouteCat, nil
	case RouteBySubCat:
		return RouteBySubCat, nil
	default:
		return "", fmt.Errorf("unsupported products_by_subcategory_route %q (expected %q or %q)", s, RouteCat, RouteBySubCat)
	}
}

// Config describes one backend deployment. It is passed to New; the client
// keeps no other configuration.
type Config struct {
	BaseURL                    string
	ImageBaseURL               string
	ProductsBySubCategoryRoute RouteStyle
	Headers                    map[string]string
	Timeout                    time.Duration
}

// ImageURL joins the image-base URL with a relative image path from the API.
func (c Config) ImageURL(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	return c.ImageBaseURL + path
}

func (c Config) normalize() (Config, error) {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.ImageBaseURL = strings.TrimSpace(c.ImageBaseURL)

	if c.BaseURL == "" {
		return Config{}, fmt.Errorf("base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return Config{}, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Config{}, fmt.Errorf("base url %q must use http or https", c.BaseURL)
	}

	route, err := ParseRouteStyle(string(c.ProductsBySubCategoryRoute))
	if err != nil {
		return Config{}, err
	}
	c.ProductsBySubCategoryRoute = route

	if c.Timeout < 0 {
		c.Timeout = 0
	}
	return c, nil
}

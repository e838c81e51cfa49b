package deployments

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

// Package deployments loads the menu API backends an operator can target.
// Observed backends differ in host and in route naming, so each one is a
// separate entry rather than a global constant.

type Deployment struct {
	ID                         string            `json:"id" yaml:"id"`
	Name                       string            `json:"name" yaml:"name"`
	BaseURL                    string            `json:"base_url" yaml:"base_url"`
	ImageBaseURL               string            `json:"image_base_url" yaml:"image_base_url"`
	ProductsBySubCategoryRoute string            `json:"products_by_subcategory_route" yaml:"products_by_subcategory_route"`
	Headers                    map[string]string `json:"headers" yaml:"headers"`
}

// ClientConfig converts the deployment into a menu API client config.
func (d Deployment) ClientConfig(timeout time.Duration) menuapi.Config {
	route, err := menuapi.ParseRouteStyle(d.ProductsBySubCategoryRoute)
	if err != nil {
		// left for menuapi.New to reject
		route = menuapi.RouteStyle(d.ProductsBySubCategoryRoute)
	}
	return menuapi.Config{
		BaseURL:                    d.BaseURL,
		ImageBaseURL:               d.ImageBaseURL,
		ProductsBySubCategoryRoute: route,
		Headers:                    d.Headers,
		Timeout:                    timeout,
	}
}

type fileRegistry struct {
	Deployments []Deployment `json:"deployments" yaml:"deployments"`
}

// Registry holds validated deployments keyed by id.
type Registry struct {
	mu          sync.RWMutex
	deployments []Deployment
	idx         map[string]Deployment
}

// LoadRegistry loads deployments from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("deployments file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deployments file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read deployments file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(parsed.Deployments)
}

// NewRegistry validates deployments and indexes them by id.
func NewRegistry(deps []Deployment) (*Registry, error) {
	if len(deps) == 0 {
		return nil, errors.New("deployments file contains no deployments entries")
	}

	reg := &Registry{
		deployments: make([]Deployment, len(deps)),
		idx:         make(map[string]Deployment, len(deps)),
	}
	for i := range deps {
		d := sanitizeDeployment(deps[i])
		if err := validateDeployment(d); err != nil {
			return nil, fmt.Errorf("deployment[%d]: %w", i, err)
		}
		if _, exists := reg.idx[d.ID]; exists {
			return nil, fmt.Errorf("duplicate deployment id %q", d.ID)
		}
		reg.deployments[i] = d
		reg.idx[d.ID] = d
	}
	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseRegistry(data []byte, ext string) (fileRegistry, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg fileRegistry
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return fileRegistry{}, errors.New("deployments file format not recognized (expected YAML or JSON)")
}

func sanitizeDeployment(d Deployment) Deployment {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = strings.TrimSpace(d.Name)
	d.BaseURL = strings.TrimRight(strings.TrimSpace(d.BaseURL), "/")
	d.ImageBaseURL = strings.TrimSpace(d.ImageBaseURL)
	d.ProductsBySubCategoryRoute = strings.ToLower(strings.TrimSpace(d.ProductsBySubCategoryRoute))
	if d.ProductsBySubCategoryRoute == "" {
		d.ProductsBySubCategoryRoute = string(menuapi.RouteCat)
	}
	if d.Name == "" {
		d.Name = d.ID
	}

	if len(d.Headers) > 0 {
		headers := make(map[string]string, len(d.Headers))
		for k, v := range d.Headers {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k == "" || v == "" {
				continue
			}
			headers[k] = v
		}
		d.Headers = headers
	}
	return d
}

func validateDeployment(d Deployment) error {
	if d.ID == "" {
		return errors.New("id is required")
	}
	if d.BaseURL == "" {
		return fmt.Errorf("base_url is required for deployment %q", d.ID)
	}
	if !strings.HasPrefix(d.BaseURL, "http://") && !strings.HasPrefix(d.BaseURL, "https://") {
		return fmt.Errorf("base_url for deployment %q must be http(s)", d.ID)
	}
	if _, err := menuapi.ParseRouteStyle(d.ProductsBySubCategoryRoute); err != nil {
		return fmt.Errorf("deployment %q: %w", d.ID, err)
	}
	return nil
}

// ByID returns the deployment with the given id.
func (r *Registry) ByID(id string) (Deployment, bool) {
	if r == nil {
		return Deployment{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Deployment{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.idx[id]
	return d, ok
}

// All returns every loaded deployment in file order.
func (r *Registry) All() []Deployment {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Deployment, len(r.deployments))
	copy(out, r.deployments)
	return out
}

package deployments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write deployments file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, "deployments.yaml", `
deployments:
  - id: production
    name: Station One
    base_url: https://api.stationonelounge.com/api/v1/
    image_base_url: https://api.stationonelounge.com/uploads/
  - id: local
    base_url: http://localhost:3001/api/v1
    image_base_url: http://localhost:3001/uploads/
    products_by_subcategory_route: BySubCat
    headers:
      X-Branch: " downtown "
      Empty: ""
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 2 {
		t.Fatalf("expected 2 deployments, got %d", len(reg.All()))
	}

	prod, ok := reg.ByID("production")
	if !ok {
		t.Fatalf("production deployment missing")
	}
	if prod.BaseURL != "https://api.stationonelounge.com/api/v1" {
		t.Fatalf("trailing slash not trimmed: %s", prod.BaseURL)
	}
	if prod.ProductsBySubCategoryRoute != string(menuapi.RouteCat) {
		t.Fatalf("unexpected default route %q", prod.ProductsBySubCategoryRoute)
	}

	local, _ := reg.ByID("local")
	if local.Name != "local" {
		t.Fatalf("name should default to id, got %q", local.Name)
	}
	if local.Headers["X-Branch"] != "downtown" || len(local.Headers) != 1 {
		t.Fatalf("unexpected headers %#v", local.Headers)
	}
	cfg := local.ClientConfig(3 * time.Second)
	if cfg.ProductsBySubCategoryRoute != menuapi.RouteBySubCat || cfg.Timeout != 3*time.Second {
		t.Fatalf("unexpected client config %+v", cfg)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "deployments.json", `{"deployments":[{"id":"a","base_url":"https://a.example"}]}`)
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if _, ok := reg.ByID("a"); !ok {
		t.Fatalf("deployment a missing")
	}
}

func TestLoadRegistryRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
deployments:
  - id: dup
    base_url: https://one.example
  - id: dup
    base_url: https://two.example
`,
		"missing base url": `
deployments:
  - id: nobase
`,
		"bad route": `
deployments:
  - id: r
    base_url: https://r.example
    products_by_subcategory_route: bycat
`,
		"empty": `deployments: []`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadRegistry(writeFile(t, "deployments.yaml", content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

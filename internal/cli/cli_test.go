package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stationone-hq/stationone-menu/internal/domain"
	"github.com/stationone-hq/stationone-menu/internal/harvest"
	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

func testMenu() *menuapi.Static {
	active := true
	return &menuapi.Static{
		Categories:    []domain.Category{{ID: "c1", Title: "Drinks", Description: "<p>Hot &amp; cold</p>"}},
		SubCategories: []domain.SubCategory{{ID: "s1", Title: "Coffee", Category: domain.NewRef("c1")}},
		Products: []domain.Product{
			{ID: "p1", Title: "Latte", Price: 45, Category: domain.NewRef("c1"), SubCategory: domain.NewRef("s1")},
		},
		Offers:       []domain.Offer{{ID: "o1", Title: "Combo", IsActive: &active, Items: []domain.Product{{ID: "p1", Title: "Latte"}}}},
		ImageBaseURL: "https://img.example.com/",
	}
}

func run(t *testing.T, api menuapi.API, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	factory := func(string) (menuapi.API, error) { return api, nil }
	code := Run(context.Background(), args, factory, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestCategoriesCommand(t *testing.T) {
	out, errOut, code := run(t, testMenu(), "categories")
	if code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "Drinks") || !strings.Contains(out, "Hot & cold") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCategoriesJSON(t *testing.T) {
	out, _, code := run(t, testMenu(), "categories", "--json")
	if code != 0 || !strings.Contains(out, `"_id": "c1"`) {
		t.Fatalf("unexpected json output (code %d):\n%s", code, out)
	}
}

func TestProductsBySubCategoryCommand(t *testing.T) {
	out, errOut, code := run(t, testMenu(), "products", "--subcategory", "s1")
	if code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "Coffee") || !strings.Contains(out, "45 EG") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestProductsRequiresScope(t *testing.T) {
	_, errOut, code := run(t, testMenu(), "products")
	if code == 0 || !strings.Contains(errOut, "Error:") {
		t.Fatalf("expected flag error, code=%d stderr=%s", code, errOut)
	}
}

func TestProductNotFoundPrintsLoadError(t *testing.T) {
	_, errOut, code := run(t, testMenu(), "product", "nope")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(errOut, "Error loading product details:") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestOfferCommand(t *testing.T) {
	out, _, code := run(t, testMenu(), "offer", "o1")
	if code != 0 || !strings.Contains(out, "Items Included (1)") || !strings.Contains(out, "Active Offer") {
		t.Fatalf("unexpected output (code %d):\n%s", code, out)
	}
}

func TestTreeCommand(t *testing.T) {
	out, _, code := run(t, testMenu(), "tree")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	for _, want := range []string{"Drinks [c1]", "  Coffee [s1]", "    - Latte  45 EG", "Combo [o1] (1 items)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("tree missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTreeGroupsByListing(t *testing.T) {
	snap := harvest.Snapshot{
		Categories: []domain.Category{{ID: "c1", Title: "Drinks"}, {ID: "c2", Title: "Desserts"}},
		SubCategories: map[string][]domain.SubCategory{
			"c1": {{ID: "s1", Title: "Coffee"}},
		},
		Products: []domain.Product{
			{ID: "p1", Title: "Latte", Price: 45},
			{ID: "p2", Title: "Cake", Price: 60},
		},
		ProductsBySubCategory: map[string][]string{"s1": {"p1"}},
		ProductsByCategory:    map[string][]string{"c2": {"p2"}},
	}

	var out bytes.Buffer
	if err := printTree(&out, snap); err != nil {
		t.Fatalf("printTree: %v", err)
	}
	want := "Drinks [c1]\n  Coffee [s1]\n    - Latte  45 EG\nDesserts [c2]\n  - Cake  60 EG\n"
	if out.String() != want {
		t.Fatalf("unexpected tree:\n%s", out.String())
	}
}

// noOfferDetails fails every offer detail lookup.
type noOfferDetails struct {
	*menuapi.Static
}

func (noOfferDetails) GetOfferDetails(context.Context, string) (domain.Offer, error) {
	return domain.Offer{}, errors.New("offer backend down")
}

func TestTreeCommandLogsOfferFallback(t *testing.T) {
	out, errOut, code := run(t, noOfferDetails{Static: testMenu()}, "tree")
	if code != 1 {
		t.Fatalf("expected partial failure exit code, got %d", code)
	}
	if !strings.Contains(out, "Combo [o1]") {
		t.Fatalf("summary offer should still print:\n%s", out)
	}
	if !strings.Contains(errOut, "offer details unavailable; using summary") {
		t.Fatalf("expected walker warning on stderr, got %q", errOut)
	}
	if !strings.Contains(errOut, "Error loading parts of the menu:") {
		t.Fatalf("expected load error on stderr, got %q", errOut)
	}
}

func TestReviewCommandSubmits(t *testing.T) {
	menu := testMenu()
	out, errOut, code := run(t, menu, "review", "--name", " Sara ", "--taste", "5", "--overall", "4", "--heard-from", "friend_family", "--would-come-back")
	if code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "Thank You!") {
		t.Fatalf("unexpected output %q", out)
	}
	reviews := menu.Reviews()
	if len(reviews) != 1 {
		t.Fatalf("expected one review, got %d", len(reviews))
	}
	r := reviews[0]
	if r.Name != "Sara" || r.TasteRating != 5 || r.OverallRating != 4 || !r.WouldComeBack || r.HowDidYouHear != "friend_family" {
		t.Fatalf("unexpected review %+v", r)
	}
}

func TestReviewCommandValidatesLocally(t *testing.T) {
	menu := testMenu()
	_, errOut, code := run(t, menu, "review", "--taste", "3")
	if code != 1 || !strings.Contains(errOut, "please enter your name") {
		t.Fatalf("expected name validation error, code=%d stderr=%q", code, errOut)
	}
	if len(menu.Reviews()) != 0 {
		t.Fatalf("invalid review must not be submitted")
	}
}

func TestReviewCommandShowsServerMessage(t *testing.T) {
	menu := testMenu()
	menu.ReviewErr = &menuapi.RequestError{Op: "submit review", StatusCode: http.StatusBadRequest, Message: "Name too short", Err: menuapi.ErrStatus}
	_, errOut, code := run(t, menu, "review", "--name", "A")
	if code != 1 || strings.TrimSpace(errOut) != "Name too short" {
		t.Fatalf("expected server message, code=%d stderr=%q", code, errOut)
	}

	menu.ReviewErr = errors.New("connection refused")
	_, errOut, _ = run(t, menu, "review", "--name", "A")
	if strings.TrimSpace(errOut) != menuapi.DefaultReviewFailure {
		t.Fatalf("expected default failure message, got %q", errOut)
	}
}

func TestDeploymentFlagReachesFactory(t *testing.T) {
	var got string
	factory := func(deployment string) (menuapi.API, error) {
		got = deployment
		return testMenu(), nil
	}
	var stdout, stderr bytes.Buffer
	if code := Run(context.Background(), []string{"offers", "--deployment", "airport"}, factory, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, stderr.String())
	}
	if got != "airport" {
		t.Fatalf("factory got deployment %q", got)
	}
}

func TestFactoryErrorIsReported(t *testing.T) {
	factory := func(string) (menuapi.API, error) { return nil, errors.New("unknown deployment") }
	var stdout, stderr bytes.Buffer
	if code := Run(context.Background(), []string{"categories"}, factory, &stdout, &stderr); code != 1 {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(stderr.String(), "unknown deployment") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

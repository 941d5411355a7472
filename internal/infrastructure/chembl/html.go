package chembl

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/PiyumiSL/Drug-Discovery/internal/source"
)

// DefaultSMILESSelector matches the elements a compound report-card page
// typically renders the canonical SMILES into.
const DefaultSMILESSelector = `[data-field="canonical-smiles"], .canonical-smiles, #CanonicalSmiles`

// HTMLSource extracts a canonical SMILES from an HTML compound page, for
// input rows whose URLs point at a report card rather than the JSON API.
type HTMLSource struct {
	client    *http.Client
	userAgent string
	selector  string
}

var _ source.Source = (*HTMLSource)(nil)

// NewHTMLSource wires an HTTP client and CSS selector; zero values fall back
// to a 20s-timeout client and DefaultSMILESSelector.
func NewHTMLSource(client *http.Client, selector string) *HTMLSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if selector == "" {
		selector = DefaultSMILESSelector
	}
	return &HTMLSource{client: client, userAgent: defaultUserAgent, selector: selector}
}

// Name identifies the strategy inside the registry.
func (s *HTMLSource) Name() string {
	return "html"
}

// Fetch downloads the page and returns the first non-empty SMILES candidate.
func (s *HTMLSource) Fetch(ctx context.Context, url string) (string, error) {
	body, err := get(ctx, s.client, s.userAgent, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayload, err)
	}

	var smiles string
	doc.Find(s.selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if v, ok := sel.Attr("value"); ok && strings.TrimSpace(v) != "" {
			smiles = strings.TrimSpace(v)
			return false
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			smiles = text
			return false
		}
		return true
	})

	if smiles == "" {
		return "", ErrNoSMILES
	}
	return smiles, nil
}

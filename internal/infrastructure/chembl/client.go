// Package chembl retrieves canonical molecular structures from remote
// compound endpoints.
package chembl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PiyumiSL/Drug-Discovery/internal/source"
)

const defaultUserAgent = "chemfp/1.0"

var (
	// ErrNetwork covers connection failures and non-2xx responses.
	ErrNetwork = errors.New("structure fetch failed")
	// ErrPayload covers syntactically invalid response bodies.
	ErrPayload = errors.New("malformed structure payload")
	// ErrNoMoleculeData is returned when the payload has no molecule_structures object.
	ErrNoMoleculeData = errors.New("no molecule data")
	// ErrNoSMILES is returned when molecule_structures lacks a usable canonical_smiles.
	ErrNoSMILES = errors.New("no SMILES available")
)

// moleculePayload mirrors the slice of the ChEMBL molecule resource we read.
// Pointers distinguish absent fields from empty ones; a null canonical_smiles
// counts as missing by convention.
type moleculePayload struct {
	MoleculeStructures *struct {
		CanonicalSMILES *string `json:"canonical_smiles"`
	} `json:"molecule_structures"`
}

// JSONSource fetches a compound's JSON document and extracts
// molecule_structures.canonical_smiles.
type JSONSource struct {
	client    *http.Client
	userAgent string
}

var _ source.Source = (*JSONSource)(nil)

// NewJSONSource wires an HTTP client; a nil client gets a 20s timeout default.
func NewJSONSource(client *http.Client) *JSONSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &JSONSource{client: client, userAgent: defaultUserAgent}
}

// Name identifies the strategy inside the registry.
func (s *JSONSource) Name() string {
	return "chembl-json"
}

// Fetch performs one GET against url and returns the canonical SMILES.
// No retries: every failure is reported to the caller as-is.
func (s *JSONSource) Fetch(ctx context.Context, url string) (string, error) {
	body, err := get(ctx, s.client, s.userAgent, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	var payload moleculePayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayload, err)
	}

	if payload.MoleculeStructures == nil {
		return "", ErrNoMoleculeData
	}
	smiles := payload.MoleculeStructures.CanonicalSMILES
	if smiles == nil || strings.TrimSpace(*smiles) == "" {
		return "", ErrNoSMILES
	}
	return strings.TrimSpace(*smiles), nil
}

func get(ctx context.Context, client *http.Client, userAgent, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: remote returned %s", ErrNetwork, resp.Status)
	}

	return resp.Body, nil
}

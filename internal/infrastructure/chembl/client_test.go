package chembl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONSourceFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"molecule_structures":{"canonical_smiles":"CCO"}}`))
	}))
	defer server.Close()

	src := NewJSONSource(server.Client())
	smiles, err := src.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if smiles != "CCO" {
		t.Fatalf("unexpected smiles: %q", smiles)
	}
}

func TestJSONSourceFetchHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := NewJSONSource(server.Client())
	_, err := src.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestJSONSourceFetchMalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"molecule_structures":`))
	}))
	defer server.Close()

	src := NewJSONSource(server.Client())
	_, err := src.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrPayload) {
		t.Fatalf("expected ErrPayload, got %v", err)
	}
}

func TestJSONSourceFetchMissingFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want error
	}{
		{"no molecule_structures", `{"molecule_chembl_id":"CHEMBL1"}`, ErrNoMoleculeData},
		{"null molecule_structures", `{"molecule_structures":null}`, ErrNoMoleculeData},
		{"no canonical_smiles", `{"molecule_structures":{}}`, ErrNoSMILES},
		{"null canonical_smiles", `{"molecule_structures":{"canonical_smiles":null}}`, ErrNoSMILES},
		{"empty canonical_smiles", `{"molecule_structures":{"canonical_smiles":"  "}}`, ErrNoSMILES},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			src := NewJSONSource(server.Client())
			_, err := src.Fetch(context.Background(), server.URL)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestHTMLSourceFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`
		<html><body>
		  <div class="compound-card">
		    <span class="canonical-smiles"> CC(=O)O </span>
		  </div>
		</body></html>`))
	}))
	defer server.Close()

	src := NewHTMLSource(server.Client(), "")
	smiles, err := src.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if smiles != "CC(=O)O" {
		t.Fatalf("unexpected smiles: %q", smiles)
	}
}

func TestHTMLSourceFetchValueAttribute(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><input id="CanonicalSmiles" value="c1ccccc1"></body></html>`))
	}))
	defer server.Close()

	src := NewHTMLSource(server.Client(), "")
	smiles, err := src.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if smiles != "c1ccccc1" {
		t.Fatalf("unexpected smiles: %q", smiles)
	}
}

func TestHTMLSourceFetchNoSMILES(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer server.Close()

	src := NewHTMLSource(server.Client(), "")
	_, err := src.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrNoSMILES) {
		t.Fatalf("expected ErrNoSMILES, got %v", err)
	}
}

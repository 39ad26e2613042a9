package scan

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativecommons/linkchecker/pkg/config"
	"github.com/creativecommons/linkchecker/pkg/report"
	"github.com/creativecommons/linkchecker/pkg/storage"
)

// corpusServer serves a fake GitHub listing, raw documents and link targets
// from one httptest server. docs maps filename to document body.
type corpusServer struct {
	*httptest.Server
	hits map[string]int
}

func newCorpusServer(t *testing.T, docs map[string]string) *corpusServer {
	t.Helper()

	cs := &corpusServer{hits: make(map[string]int)}

	mux := http.NewServeMux()
	mux.HandleFunc("/tree/legalcode", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><table><tbody>")
		for name := range docs {
			fmt.Fprintf(w, `<tr><td><a class="js-navigation-open" href="#">%s</a></td></tr>`, name)
		}
		fmt.Fprint(w, "</tbody></table></body></html>")
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/raw/"):]
		body, ok := docs[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		cs.hits["/ok"]++
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		cs.hits["/missing"]++
		w.WriteHeader(http.StatusNotFound)
	})

	cs.Server = httptest.NewServer(mux)
	t.Cleanup(cs.Close)
	return cs
}

func (cs *corpusServer) config() *config.Config {
	cfg := config.Default()
	cfg.Source.ListingURL = cs.URL + "/tree/legalcode"
	cfg.Source.RawPrefix = cs.URL + "/raw/"
	cfg.Source.CanonicalHost = cs.URL
	cfg.Checker.CheckTimeout = "5s"
	return cfg
}

// fakeStore captures what the scanner persists.
type fakeStore struct {
	run    storage.Run
	broken []storage.BrokenLink
	saved  bool
}

func (f *fakeStore) SaveRun(ctx context.Context, run storage.Run, broken []storage.BrokenLink) (int, error) {
	f.run = run
	f.broken = broken
	f.saved = true
	return 1, nil
}

func (f *fakeStore) Close() error { return nil }

func TestRunReportsBrokenLink(t *testing.T) {
	var doc bytes.Buffer
	doc.WriteString(`<html><body>`)
	doc.WriteString(`<a href="/ok">good</a>`)
	doc.WriteString(`<a href="/missing">dead</a>`)
	doc.WriteString(`<a href="mailto:info@creativecommons.org">mail</a>`)
	doc.WriteString(`<a href="#top">top</a>`)
	doc.WriteString(`<a name="anchor-only">plain</a>`)
	doc.WriteString(`</body></html>`)

	cs := newCorpusServer(t, map[string]string{"by_4.0.html": doc.String()})

	var out bytes.Buffer
	store := &fakeStore{}
	s := New(cs.config(), report.New(&out, false), store)

	broken, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, broken)
	assert.Equal(t, 1, s.Stats.Broken)
	assert.Equal(t, 1, s.Stats.Documents)
	assert.Equal(t, 5, s.Stats.LinksFound)

	got := out.String()
	assert.Contains(t, got, "No. of files to be checked: 1")
	assert.Contains(t, got, "Checking: by_4.0.html")
	assert.Contains(t, got, "URL: "+cs.URL+"/licenses/by/4.0/legalcode")
	assert.Contains(t, got, "Errors:")
	assert.Contains(t, got, "404 -\t ")

	// mailto never went out, the fragment and bare anchors were filtered
	assert.Equal(t, 1, cs.hits["/ok"])
	assert.Equal(t, 1, cs.hits["/missing"])

	require.True(t, store.saved)
	require.Len(t, store.broken, 1)
	assert.Equal(t, "by_4.0.html", store.broken[0].Document)
	assert.Equal(t, cs.URL+"/missing", store.broken[0].URL)
	assert.Equal(t, "404", store.broken[0].Label)
	assert.Equal(t, 404, store.broken[0].Code)
	assert.Equal(t, 1, store.run.Documents)
	assert.Equal(t, 1, store.run.Broken)
}

func TestRunCleanCorpus(t *testing.T) {
	doc := `<html><body><a href="/ok">good</a><a href="mailto:a@b.c">mail</a></body></html>`
	cs := newCorpusServer(t, map[string]string{"by-sa_4.0.html": doc})

	var out bytes.Buffer
	s := New(cs.config(), report.New(&out, false), nil)

	broken, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, broken)
	assert.Equal(t, 0, s.Stats.Broken)
	assert.NotContains(t, out.String(), "Errors:")
	assert.NotContains(t, out.String(), "-\t")
}

func TestRunDeduplicatesAcrossDocuments(t *testing.T) {
	doc := `<html><body><a href="/ok">shared</a><a href="/ok">again</a></body></html>`
	cs := newCorpusServer(t, map[string]string{
		"by_4.0.html":    doc,
		"by-nc_4.0.html": doc,
	})

	var out bytes.Buffer
	s := New(cs.config(), report.New(&out, false), nil)

	broken, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, broken)
	assert.Equal(t, 1, cs.hits["/ok"], "identical resolved URLs probed once per run")
	assert.Equal(t, 3, s.cache.Hits())
}

func TestRunSkipsNonHTMLDocuments(t *testing.T) {
	cs := newCorpusServer(t, map[string]string{"index.rdf": "<rdf/>"})

	var out bytes.Buffer
	s := New(cs.config(), report.New(&out, false), nil)

	broken, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, broken)
	assert.Equal(t, 0, s.Stats.Documents)
	assert.Equal(t, 1, s.Stats.DocumentsSkipped)
	assert.Contains(t, out.String(), "Checking: index.rdf")
}

func TestRunSkipsUnfetchableDocument(t *testing.T) {
	cs := newCorpusServer(t, map[string]string{"by_4.0.html": `<a href="/ok">x</a>`})

	cfg := cs.config()
	// listed but not served: the fetch 404s and the document is skipped
	cfg.Source.RawPrefix = cs.URL + "/raw/gone-"

	var out bytes.Buffer
	s := New(cfg, report.New(&out, false), nil)

	broken, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, broken)
	assert.Equal(t, 0, s.Stats.Documents)
	assert.Equal(t, 1, s.Stats.DocumentsSkipped)
}

func TestRunListingFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Source.ListingURL = srv.URL + "/tree/legalcode"

	var out bytes.Buffer
	s := New(cfg, report.New(&out, false), nil)

	_, err := s.Run(context.Background())
	assert.Error(t, err)
}

func TestRunEmptyListingIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Source.ListingURL = srv.URL + "/tree/legalcode"

	var out bytes.Buffer
	s := New(cfg, report.New(&out, false), nil)

	_, err := s.Run(context.Background())
	assert.ErrorIs(t, err, ErrEmptyListing)
}

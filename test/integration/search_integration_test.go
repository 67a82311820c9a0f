//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/drclip/internal/browser"
	"github.com/pders01/drclip/internal/finder"
	"github.com/pders01/drclip/internal/site"
	"github.com/pders01/drclip/internal/validation"
)

var (
	server  *httptest.Server
	session *browser.Session
)

func TestMain(m *testing.M) {
	bin, ok := launcher.LookPath()
	if !ok {
		fmt.Println("no Chromium found, skipping integration tests")
		os.Exit(0)
	}

	server = httptest.NewServer(fixtureHandler())

	var err error
	session, err = browser.Launch(context.Background(), browser.Options{
		Headless:  true,
		Bin:       bin,
		NoSandbox: true,
		Timeout:   10 * time.Second,
	})
	if err != nil {
		fmt.Printf("Failed to launch browser: %v\n", err)
		server.Close()
		os.Exit(1)
	}

	code := m.Run()

	session.Close()
	server.Close()
	os.Exit(code)
}

const homeHTML = `<!doctype html>
<html><body>
<div id="consent"><button class="accept" onclick="document.getElementById('consent').remove()">Accepter</button></div>
<h1>Forside</h1>
</body></html>`

// The search page renders three pages of teasers. "Vis flere" appends the
// next page and is disabled once the last page is shown.
const searchHTML = `<!doctype html>
<html><body>
<form id="form"><input type="search" name="q"></form>
<div id="sort" style="display:none"><input type="radio" id="sort-published"></div>
<div id="out"></div>
<button id="more" style="display:none">Vis flere</button>
<script>
const pages = [
  [["Regn i hele landet", "/nyheder/regn"], ["Trafikkaos på motorvejen", "/nyheder/trafik"]],
  [["Over 25 graders varme: Vi har årets første sommerdag", "/nyheder/sommerdag"], ["Regn i hele landet", "/nyheder/regn-igen"]],
  [["Fodbold: FCK taber igen", "/nyheder/fck"]],
];
let shown = 0;
function render() {
  const ul = document.getElementById("results");
  for (const [text, href] of pages[shown]) {
    const li = document.createElement("li");
    const a = document.createElement("a");
    a.href = href;
    a.textContent = text;
    li.appendChild(a);
    ul.appendChild(li);
  }
  shown++;
  document.getElementById("more").disabled = shown >= pages.length;
}
document.getElementById("form").addEventListener("submit", (e) => {
  e.preventDefault();
  const ul = document.createElement("ul");
  ul.id = "results";
  document.getElementById("out").appendChild(ul);
  document.getElementById("sort").style.display = "block";
  document.getElementById("more").style.display = "block";
  render();
});
document.getElementById("more").addEventListener("click", render);
</script>
</body></html>`

func fixtureHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, homeHTML)
	})
	mux.HandleFunc("/soeg", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchHTML)
	})
	mux.HandleFunc("/nyheder/", func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimPrefix(r.URL.Path, "/nyheder/")
		fmt.Fprintf(w, "<!doctype html><html><body><h1>Artikel %s</h1><p>Brødtekst.</p></body></html>", slug)
	})
	return mux
}

func fixtureProfile() *site.Profile {
	return &site.Profile{
		Name:      "fixture",
		BaseURL:   server.URL,
		HomeURL:   server.URL + "/",
		SearchURL: server.URL + "/soeg",
		Selectors: site.Selectors{
			ConsentAccept:   "#consent button.accept",
			SearchInput:     "input[type='search']",
			Results:         "#results",
			Teaser:          "#results li",
			TeaserLink:      "a",
			SortByPublished: "#sort-published",
			LoadMore:        "#more",
		},
	}
}

func openPage(t *testing.T) *browser.Page {
	t.Helper()
	page, err := session.OpenPage(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { page.Close() })
	return page
}

func TestDismissConsent(t *testing.T) {
	ctx := context.Background()
	page := openPage(t)
	p := fixtureProfile()

	require.NoError(t, page.Navigate(ctx, p.HomeURL))
	visible, err := page.Visible(ctx, p.Selectors.ConsentAccept)
	require.NoError(t, err)
	require.True(t, visible)

	require.NoError(t, finder.DismissConsent(ctx, page, p.Selectors.ConsentAccept, 100*time.Millisecond))

	visible, err = page.Visible(ctx, p.Selectors.ConsentAccept)
	require.NoError(t, err)
	assert.False(t, visible)

	// Nothing to dismiss the second time
	assert.NoError(t, finder.DismissConsent(ctx, page, p.Selectors.ConsentAccept, 0))
}

func TestFindAfterLoadMore(t *testing.T) {
	page := openPage(t)
	f := finder.New(page, fixtureProfile(), finder.Options{Delay: 300 * time.Millisecond, MaxRounds: 10})

	res, err := f.Find(context.Background(), "sommer", "årets første sommerdag")
	require.NoError(t, err)

	require.True(t, res.Found)
	assert.Equal(t, "/nyheder/sommerdag", res.Link)
	assert.Equal(t, 1, res.Rounds)
	// The repeated "Regn i hele landet" in round two is not counted again
	assert.Equal(t, []string{
		"Regn i hele landet",
		"Trafikkaos på motorvejen",
		"Over 25 graders varme: Vi har årets første sommerdag",
	}, res.Seen)
}

func TestFindNotFound(t *testing.T) {
	page := openPage(t)
	f := finder.New(page, fixtureProfile(), finder.Options{Delay: 300 * time.Millisecond, MaxRounds: 10})

	res, err := f.Find(context.Background(), "sommer", "Hedebølge i december")
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Equal(t, 2, res.Rounds, "stops once load more is disabled")
	assert.Len(t, res.Seen, 4)
}

func TestExportPDF(t *testing.T) {
	link, err := validation.ResolveArticleURL(server.URL, "/nyheder/sommerdag")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "article.pdf")
	exp, err := browser.ExportPDF(context.Background(), session, link, path)
	require.NoError(t, err)
	assert.Equal(t, "Artikel sommerdag", exp.Title)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "file is a PDF")
}

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bakeryPage = `
<html>
	<head>
		<title>  Rise &amp; Shine   Bakery </title>
		<meta name="description" content="Organic sourdough and pastries baked fresh every morning.">
	</head>
	<body>
		<nav>Home | Menu | Contact</nav>
		<header>Order online</header>
		<main>
			<h1>Our story</h1>
			<p>We bake   with local flour.</p>
		</main>
		<script>var tracking = true;</script>
		<footer>Copyright 2024</footer>
	</body>
</html>`

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-valid-url", "ftp://example.com/file", "http://"} {
		t.Run(u, func(t *testing.T) {
			_, err := URL(context.Background(), u, nil)
			require.Error(t, err)

			var fetchErr *Error
			assert.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 1000)))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, &Options{MaxBytes: 100})
	require.NoError(t, err)
	assert.Len(t, result.HTML, 100)
}

func TestExtractPage(t *testing.T) {
	page, err := ExtractPage(bakeryPage)
	require.NoError(t, err)

	assert.Equal(t, "Rise & Shine Bakery", page.Title)
	assert.Equal(t, "Organic sourdough and pastries baked fresh every morning.", page.Description)
	assert.Equal(t, "Our story\nWe bake with local flour.", page.Text)
	assert.NotContains(t, page.Text, "tracking")
}

func TestExtractPage_Fallbacks(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Paw Palace">
		<meta property="og:description" content="Grooming for happy dogs">
	</head><body><div>Bath and trim</div></body></html>`

	page, err := ExtractPage(html)
	require.NoError(t, err)
	assert.Equal(t, "Paw Palace", page.Title)
	assert.Equal(t, "Grooming for happy dogs", page.Description)
	assert.Equal(t, "Bath and trim", page.Text)
}

func TestFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(bakeryPage))
	}))
	defer server.Close()

	page, err := FetchPage(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, page.URL)

	combined := page.Combined()
	assert.True(t, strings.HasPrefix(combined, "Rise & Shine Bakery\nOrganic sourdough"))
	assert.Contains(t, combined, "local flour")
}

func TestPage_CombinedSkipsEmpty(t *testing.T) {
	p := &Page{Title: "Only Title", Text: "  "}
	assert.Equal(t, "Only Title", p.Combined())
}

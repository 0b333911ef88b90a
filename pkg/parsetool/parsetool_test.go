package parsetool_test

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

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	parsetool "github.com/mutablelogic/go-arcade/pkg/parsetool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// buildPDF returns a PDF with one line of text on each page
func buildPDF(pages ...string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled in below
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	kids := make([]string, 0, len(pages))
	for _, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		page := len(objects) + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", page))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", page+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}

func TestParseDocument_PDF(t *testing.T) {
	assert := assert.New(t)
	path := writeFile(t, "alice.pdf", string(buildPDF("Hello Alice", "Down the rabbit hole")))

	md, err := parsetool.ParseDocument(context.Background(), path)
	assert.NoError(err)
	assert.Equal("## Page 1\n\nHello Alice\n\n## Page 2\n\nDown the rabbit hole", md)
}

func TestParseDocument_Text(t *testing.T) {
	assert := assert.New(t)

	md, err := parsetool.ParseDocument(context.Background(), writeFile(t, "notes.md", "# Notes\n\nSome text\n"))
	assert.NoError(err)
	assert.Equal("# Notes\n\nSome text\n", md)

	md, err = parsetool.ParseDocument(context.Background(), writeFile(t, "notes.txt", "plain text"))
	assert.NoError(err)
	assert.Equal("plain text", md)

	md, err = parsetool.ParseDocument(context.Background(), writeFile(t, "data.json", `{"a": 1}`))
	assert.NoError(err)
	assert.Equal("```json\n{\"a\": 1}\n```\n", md)
}

func TestParseDocument_CSV(t *testing.T) {
	assert := assert.New(t)
	md, err := parsetool.ParseDocument(context.Background(), writeFile(t, "people.csv", "name,age\nalice,30\nbob\n"))
	assert.NoError(err)
	assert.Equal("| name | age |\n| --- | --- |\n| alice | 30 |\n| bob |  |\n", md)
}

func TestParseDocument_HTML(t *testing.T) {
	assert := assert.New(t)
	md, err := parsetool.ParseDocument(context.Background(), writeFile(t, "page.html", "<html><body><h1>Title</h1><p>Hello <b>world</b></p></body></html>"))
	assert.NoError(err)
	assert.Contains(md, "Title")
	assert.Contains(md, "world")
	assert.NotContains(md, "<p>")
}

func TestParseDocument_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := parsetool.ParseDocument(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(err, arcade.ErrNotFound)

	_, err = parsetool.ParseDocument(context.Background(), writeFile(t, "broken.pdf", "not a pdf"))
	assert.ErrorIs(err, arcade.ErrBadParameter)

	_, err = parsetool.ParseDocument(context.Background(), writeFile(t, "image.png", "\x89PNG\r\n\x1a\n"))
	assert.ErrorIs(err, arcade.ErrBadParameter)
}

func TestParseDocument_URL(t *testing.T) {
	assert := assert.New(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><p>Remote document</p></body></html>"))
	}))
	defer ts.Close()

	md, err := parsetool.ParseDocument(context.Background(), ts.URL+"/document")
	assert.NoError(err)
	assert.Contains(md, "Remote document")
}

func TestToolkit(t *testing.T) {
	assert := assert.New(t)
	tk, err := parsetool.NewToolkit()
	require.NoError(t, err)
	assert.Equal("Parse", tk.Name())

	result, err := tk.Run(context.Background(), "Parse.ParseDocument", map[string]any{
		"file_url_or_path": writeFile(t, "hello.txt", "hello"),
	})
	assert.NoError(err)
	assert.Equal("hello", result)

	_, err = tk.Run(context.Background(), "Parse.ParseDocument", nil)
	assert.ErrorIs(err, arcade.ErrBadParameter)
}

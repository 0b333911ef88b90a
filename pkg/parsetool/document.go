package parsetool

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// document is the raw content of a file, with the name and media type used
// to pick a converter
type document struct {
	name      string
	mediaType string
	data      []byte
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	typePDF      = "application/pdf"
	typeHTML     = "text/html"
	typeCSV      = "text/csv"
	typeMarkdown = "text/markdown"
	typeJSON     = "application/json"
	typeText     = "text/plain"
)

// Maximum document size
const maxSize = 64 << 20

var extensions = map[string]string{
	".pdf":      typePDF,
	".html":     typeHTML,
	".htm":      typeHTML,
	".csv":      typeCSV,
	".md":       typeMarkdown,
	".markdown": typeMarkdown,
	".json":     typeJSON,
	".txt":      typeText,
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// load reads a local path, file:// URL or fetches an http(s) URL
func load(ctx context.Context, urlOrPath string, opts ...client.ClientOpt) (*document, error) {
	if u, err := url.Parse(urlOrPath); err == nil {
		switch u.Scheme {
		case "http", "https":
			return fetch(ctx, u, opts...)
		case "file":
			return open(u.Path)
		}
	}
	return open(urlOrPath)
}

func open(path string) (*document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, arcade.ErrNotFound.Withf("file %q", path)
		}
		return nil, arcade.ErrBadParameter.Withf("open: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize))
	if err != nil {
		return nil, arcade.ErrInternalServerError.Withf("read: %v", err)
	}
	return &document{
		name:      filepath.Base(path),
		mediaType: typeByExtension(path),
		data:      data,
	}, nil
}

func fetch(ctx context.Context, u *url.URL, opts ...client.ClientOpt) (*document, error) {
	c, err := client.New(append([]client.ClientOpt{client.OptEndpoint(u.String())}, opts...)...)
	if err != nil {
		return nil, err
	}
	doc := &document{name: filepath.Base(u.Path)}
	if err := c.DoWithContext(ctx, client.NewRequest(), doc); err != nil {
		return nil, arcade.ErrBadParameter.Withf("fetch %q: %v", u.String(), err)
	}
	if doc.mediaType == "" || doc.mediaType == "application/octet-stream" {
		doc.mediaType = typeByExtension(u.Path)
	}
	return doc, nil
}

///////////////////////////////////////////////////////////////////////////////
// UNMARSHALER

func (d *document) Unmarshal(header http.Header, body io.Reader) error {
	if mediaType, _, err := mime.ParseMediaType(header.Get("Content-Type")); err == nil {
		d.mediaType = mediaType
	}
	data, err := io.ReadAll(io.LimitReader(body, maxSize))
	if err != nil {
		return err
	}
	d.data = data
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Type returns the media type of the document, sniffing the content when
// the extension or response header did not name one
func (d *document) Type() string {
	mediaType := d.mediaType
	if mediaType == "" {
		mediaType = http.DetectContentType(d.data)
	}
	if t, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = t
	}
	switch mediaType {
	case "text/x-markdown":
		return typeMarkdown
	case "application/xhtml+xml":
		return typeHTML
	}
	return mediaType
}

// Markdown converts the document into Markdown
func (d *document) Markdown() (string, error) {
	switch t := d.Type(); t {
	case typePDF:
		return pdfToMarkdown(d.data)
	case typeHTML:
		return htmlToMarkdown(d.data)
	case typeCSV:
		return csvToMarkdown(d.data)
	case typeJSON:
		return "```json\n" + strings.TrimSpace(string(d.data)) + "\n```\n", nil
	case typeMarkdown, typeText:
		return string(d.data), nil
	default:
		return "", arcade.ErrBadParameter.Withf("unsupported document type %q", t)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func typeByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, exists := extensions[ext]; exists {
		return t
	}
	return mime.TypeByExtension(ext)
}

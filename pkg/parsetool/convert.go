package parsetool

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	// Packages
	html2text "github.com/jaytaylor/html2text"
	pdf "github.com/ledongthuc/pdf"
	arcade "github.com/mutablelogic/go-arcade"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// pdfToMarkdown returns one section per page with text
func pdfToMarkdown(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", arcade.ErrBadParameter.Withf("pdf: %v", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", arcade.ErrBadParameter.Withf("pdf page %d: %v", i, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "## Page %d\n\n%s", i, text)
	}
	return b.String(), nil
}

func htmlToMarkdown(data []byte) (string, error) {
	text, err := html2text.FromString(string(data), html2text.Options{PrettyTables: true})
	if err != nil {
		return "", arcade.ErrBadParameter.Withf("html: %v", err)
	}
	return text, nil
}

// csvToMarkdown renders the first record as the table header
func csvToMarkdown(data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return "", arcade.ErrBadParameter.Withf("csv: %v", err)
	} else if len(records) == 0 {
		return "", nil
	}

	width := 0
	for _, record := range records {
		width = max(width, len(record))
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(cells) {
				cell = strings.ReplaceAll(strings.TrimSpace(cells[i]), "|", `\|`)
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
	}
	writeRow(records[0])
	b.WriteString("|" + strings.Repeat(" --- |", width) + "\n")
	for _, record := range records[1:] {
		writeRow(record)
	}
	return b.String(), nil
}

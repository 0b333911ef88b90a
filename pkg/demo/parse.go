package demo

import (
	"context"
	"fmt"
)

const parseChatPrompt = `
You are a document managment expert.
You will use the tools provided to you to answer the question.
You use no prior knowledge.
`

// ParseChat lists the Parse toolkit, asks the service to parse the document
// and prints the beginning of the parsed text.
func (d *Demo) ParseChat(ctx context.Context) error {
	if err := d.listTools(ctx, "parse"); err != nil {
		return err
	}

	question := fmt.Sprintf("Get the markdown content from the document located at %q?", d.document)
	d.out.Printf("\n[❓] Asking: %s\n\n", question)
	resp, err := d.chat(ctx, parseChatPrompt, question, "Parse.ParseDocument")
	if err != nil {
		return err
	}

	d.out.Rule("--- text ---")
	d.out.Println(truncate(resp.FirstToolContent(), previewLength) + "...")
	d.out.Rule("---")

	return nil
}

// truncate returns at most n runes of text
func truncate(text string, n int) string {
	if runes := []rune(text); len(runes) > n {
		return string(runes[:n])
	}
	return text
}

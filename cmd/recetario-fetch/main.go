package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"
)

func main() {
	var (
		url    = flag.String("url", "", "Recipe page URL (required)")
		outDir = flag.String("out", "entrada", "Directory for extracted text files")
		name   = flag.String("name", "", "Output file name without extension (default: derived from URL)")
	)
	flag.Parse()

	if *url == "" {
		log.Fatal("--url required")
	}

	text, err := fetchText(*url)
	if err != nil {
		log.Fatalf("fetch %s: %v", *url, err)
	}

	// Keep the source URL in the text so the normalizer can extract it.
	if !strings.Contains(text, *url) {
		text = text + "\n" + *url + "\n"
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	base := *name
	if base == "" {
		base = slugFromURL(*url)
	}
	outPath := filepath.Join(*outDir, base+".txt")
	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		log.Fatalf("write %s: %v", outPath, err)
	}

	log.Printf("✓ Saved %s (%d bytes)", outPath, len(text))
}

func fetchText(url string) (string, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", err
	}
	return extractText(doc), nil
}

// blockTags are elements that end a line of recipe text. The
// normalizer is line-oriented, so ingredient list items and steps must
// come out on their own lines.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "br": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "section": true,
	"article": true, "ul": true, "ol": true, "table": true,
}

var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "head": true,
	"nav": true, "footer": true,
}

// extractText walks the parsed document and emits its text content
// with newlines at block element boundaries.
func extractText(doc *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(strings.TrimSpace(n.Data))
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			buf.WriteByte('\n')
		}
	}
	walk(doc)

	// Collapse runs of blank lines and trailing spaces.
	lines := strings.Split(buf.String(), "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n") + "\n"
}

// slugFromURL derives a file name from the last path segment of a URL.
func slugFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.Index(trimmed, "://"); i >= 0 {
		trimmed = trimmed[i+3:]
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 && i+1 < len(trimmed) {
		trimmed = trimmed[i+1:]
	}
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(trimmed) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "receta"
	}
	return slug
}

package page

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Elements whose content is chrome or code, not prose
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Nav:      true,
	atom.Footer:   true,
	atom.Svg:      true,
	atom.Head:     true,
}

// Elements that start a new line of text
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Main: true, atom.Header: true, atom.Aside: true, atom.Blockquote: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Table: true, atom.Tr: true,
	atom.Pre: true, atom.Figure: true, atom.Figcaption: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
}

func extractHTML(src []byte) (string, string) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return "", string(src)
	}

	e := &htmlExtractor{}
	e.walk(doc, false)
	return strings.TrimSpace(e.title), e.b.String()
}

type htmlExtractor struct {
	b     strings.Builder
	title string
}

func (e *htmlExtractor) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			e.b.WriteString(n.Data)
			return
		}
		e.writeCollapsed(n.Data)
		return

	case html.ElementNode:
		if n.DataAtom == atom.Head {
			e.findTitle(n)
			return
		}
		if skipped[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			e.b.WriteString("\n")
			return
		}
		if n.DataAtom == atom.Pre {
			pre = true
		}
	}

	block := n.Type == html.ElementNode && blocks[n.DataAtom]
	if block {
		e.newline()
		if n.DataAtom == atom.Li {
			e.b.WriteString("- ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c, pre)
	}

	if block {
		e.newline()
		if n.DataAtom == atom.P || isHeading(n.DataAtom) {
			e.b.WriteString("\n")
		}
	}
}

func (e *htmlExtractor) findTitle(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Title && c.FirstChild != nil {
			e.title = c.FirstChild.Data
			return
		}
	}
}

func (e *htmlExtractor) writeCollapsed(s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" && !e.atLineStart() {
			e.b.WriteString(" ")
		}
		return
	}
	if startsWithSpace(s) && !e.atLineStart() {
		e.b.WriteString(" ")
	}
	e.b.WriteString(strings.Join(fields, " "))
	if endsWithSpace(s) {
		e.b.WriteString(" ")
	}
}

func (e *htmlExtractor) atLineStart() bool {
	s := e.b.String()
	return s == "" || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, " ")
}

func (e *htmlExtractor) newline() {
	if !strings.HasSuffix(e.b.String(), "\n") && e.b.Len() > 0 {
		e.b.WriteString("\n")
	}
}

func isHeading(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func startsWithSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\n\r", rune(s[0]))
}

func endsWithSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\n\r", rune(s[len(s)-1]))
}

package figures

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parsePane(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func indices(root *html.Node) []string {
	var out []string
	for c := range Captions(root) {
		for _, a := range c.Attr {
			if a.Key == IndexAttr {
				out = append(out, a.Val)
			}
		}
	}
	return out
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

const paneHTML = `<div>
<figure class="image-captions-figure"><img src="a.png"><figcaption class="image-captions-caption" data-image-caption-index="7">A</figcaption></figure>
<p>text</p>
<section><figure class="image-captions-figure"><img src="b.png"><figcaption class="x image-captions-caption">B</figcaption></figure></section>
<figcaption class="other">not ours</figcaption>
<figure class="image-captions-figure"><img src="c.png"><figcaption class="image-captions-caption" data-image-caption-index="1">C</figcaption></figure>
</div>`

func TestRenumber_DenseDocumentOrder(t *testing.T) {
	pane := parsePane(t, paneHTML)

	require.Equal(t, 3, Renumber(pane))
	require.Equal(t, []string{"1", "2", "3"}, indices(pane))
}

func TestRenumber_PerPane(t *testing.T) {
	a := parsePane(t, paneHTML)
	b := parsePane(t, `<figcaption class="image-captions-caption">only</figcaption>`)

	require.Equal(t, 4, Renumber(a, nil, b))
	require.Equal(t, []string{"1", "2", "3"}, indices(a))
	require.Equal(t, []string{"1"}, indices(b))
}

func TestRenumber_Idempotent(t *testing.T) {
	pane := parsePane(t, paneHTML)

	Renumber(pane)
	first := render(t, pane)
	Renumber(pane)
	require.Equal(t, first, render(t, pane))
}

func TestRenumber_FollowsStructuralChanges(t *testing.T) {
	pane := parsePane(t, paneHTML)
	Renumber(pane)

	var firstFigure *html.Node
	for n := range pane.Descendants() {
		if n.Type == html.ElementNode && HasClass(n, FigureClass) {
			firstFigure = n
			break
		}
	}
	require.NotNil(t, firstFigure)
	firstFigure.Parent.RemoveChild(firstFigure)

	require.Equal(t, 2, Renumber(pane))
	require.Equal(t, []string{"1", "2"}, indices(pane))
}

func TestHasClass(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "span", Attr: []html.Attribute{{Key: "class", Val: " a  image-captions-caption-x b "}}}
	require.True(t, HasClass(n, "a"))
	require.True(t, HasClass(n, "b"))
	require.False(t, HasClass(n, CaptionClass))
}

package events

import (
	"time"

	"golang.org/x/net/html"
)

// ImageLoaded is published by a rendering host once an image element is
// present in the rendered output of a document.
//
// End is the body offset where the image markup ends in the document source.
// It pairs the element with the extracted image whose span ends there, so
// repeated embeds of one file stay distinguishable. Source is informational.
type ImageLoaded struct {
	Document string
	Source   string
	End      int
	Element  *html.Node
}

// DocumentChanged is emitted when a watched document was written, created,
// renamed or removed.
type DocumentChanged struct {
	Path      string
	Removed   bool
	ChangedAt time.Time
}

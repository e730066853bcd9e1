package syntax

// Tag names emitted by the markdown tree producer. They follow the token
// classes of the live editor so that trees captured from it can be replayed.
const (
	TagDocument  = "document"
	TagParagraph = "paragraph"
	TagHeading   = "heading"

	TagFormatting = "formatting"

	// internal embeds: ![[target|alias]]
	TagFormattingLink      = "formatting-link"
	TagFormattingLinkStart = "formatting-link-start"
	TagFormattingLinkEnd   = "formatting-link-end"
	TagFormattingEmbed     = "formatting-embed"
	TagEmbed               = "hmd-embed"
	TagInternalLink        = "hmd-internal-link"
	TagLinkAliasPipe       = "link-alias-pipe"
	TagLinkAlias           = "link-alias"

	// external images: ![alt](url "title")
	TagImage                = "image"
	TagImageMarker          = "image-marker"
	TagFormattingImage      = "formatting-image"
	TagImageAltText         = "image-alt-text"
	TagImageAltTextEnd      = "image-alt-text-end"
	TagFormattingLinkString = "formatting-link-string"
	TagString               = "string"
	TagURL                  = "url"
	TagLinkTitle            = "link-title"

	TagInlineCode = "inline-code"
)

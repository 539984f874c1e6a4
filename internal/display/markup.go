// Package display builds Telegram HTML markup and renders it for terminals.
//
// Messages are composed once, in Telegram's HTML parse mode, and the CLI
// converts the same text to ANSI styling (or plain text) before printing.
package display

import "strings"

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape makes text safe for Telegram's HTML parse mode.
func Escape(text string) string {
	return escaper.Replace(text)
}

// Bold wraps text in <b> tags.
func Bold(text string) string {
	return "<b>" + text + "</b>"
}

// Italic wraps text in <i> tags.
func Italic(text string) string {
	return "<i>" + text + "</i>"
}

// Code wraps text in <code> tags, rendered monospace by Telegram clients.
func Code(text string) string {
	return "<code>" + text + "</code>"
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package favicon derives icon URLs for a site.

A site may carry a custom image. When it does not, or when that image fails to
load, clients walk an ordered list of public favicon services for the site's
domain, ending with a generated placeholder.

Candidate order:

 1. The site's own image, unless empty or already a data URI.
 2. DuckDuckGo, icon.horse, and Google's s2 service.
 3. /favicon.ico and /favicon.png on the site itself.
*/
package favicon

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// # Services

// services build a favicon URL from an ASCII host, in fallback order.
var services = []func(domain string) string{
	func(domain string) string { return "https://icons.duckduckgo.com/ip3/" + domain + ".ico" },
	func(domain string) string { return "https://icon.horse/icon/" + domain },
	func(domain string) string { return "https://www.google.com/s2/favicons?domain=" + domain + "&sz=128" },
	func(domain string) string { return "https://" + domain + "/favicon.ico" },
	func(domain string) string { return "https://" + domain + "/favicon.png" },
}

// Domain extracts the host name from rawURL.
//
// Unparseable input falls back to the text between the scheme and the first
// slash. Internationalised hosts are returned in their punycode form.
func Domain(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	host := ""
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		host = parsed.Hostname()
	} else {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
		host, _, _ = strings.Cut(trimmed, "/")
	}

	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		return ascii
	}
	return host
}

// Candidates lists icon URLs to try for a site, best first.
func Candidates(image *string, siteURL string) []string {
	urls := make([]string, 0, len(services)+1)

	if image != nil {
		custom := strings.TrimSpace(*image)
		if custom != "" && !strings.HasPrefix(custom, "data:") {
			urls = append(urls, custom)
		}
	}

	if domain := Domain(siteURL); domain != "" {
		for _, build := range services {
			urls = append(urls, build(domain))
		}
	}

	return urls
}

// # Placeholder

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64">` +
	`<rect width="64" height="64" rx="14" fill="#E0F2FE"/>` +
	`<circle cx="32" cy="24" r="12" fill="none" stroke="#0071E3" stroke-width="1.5" opacity="0.5"/>` +
	`<text x="32" y="48" font-family="-apple-system, sans-serif" font-size="18" font-weight="600" fill="#0071E3" text-anchor="middle">%s</text>` +
	`</svg>`

// Placeholder returns a data URI for a globe icon labelled with the first
// letter of label, upper-cased. An empty label renders "?".
func Placeholder(label string) string {
	letter := "?"
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(label)); r != utf8.RuneError {
		letter = strings.ToUpper(string(r))
	}

	svg := fmt.Sprintf(placeholderSVG, escapeXML(letter))
	return "data:image/svg+xml," + url.PathEscape(svg)
}

func escapeXML(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redirect computes where the browser goes after the backend hands control
back, and serves the /auth/callback endpoint that receives that hand-back.

Every absolute URL it builds contains the mount prefix exactly once.
*/
package redirect

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/session"
)

// SanitizeNext reduces next to a local absolute path below the mount prefix.
//
// Anything that could leave the site (a scheme, a host, a protocol-relative
// "//" path) collapses to "/". A leading copy of prefix is removed so it is
// not added twice.
func SanitizeNext(next, prefix string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return constants.RootPath
	}

	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return constants.RootPath
	}

	if prefix != "" {
		if next == prefix {
			return constants.RootPath
		}
		for _, separator := range []string{"/", "?", "#"} {
			if strings.HasPrefix(next, prefix+separator) {
				next = next[len(prefix):]
				if !strings.HasPrefix(next, "/") {
					next = "/" + next
				}
				break
			}
		}
	}

	return next
}

// BuildCallbackURL returns the absolute URL for the logical destination next.
//
//   - "/"             → origin + prefix
//   - "/auth-success" → origin + prefix + "/auth-success"
//   - anything else   → origin + prefix + next
func BuildCallbackURL(origin, prefix, next string) string {
	origin = strings.TrimRight(origin, "/")
	next = SanitizeNext(next, prefix)

	switch next {
	case constants.RootPath:
		if prefix == "" {
			return origin + constants.RootPath
		}
		return origin + prefix
	case constants.SuccessPath:
		return origin + prefix + constants.SuccessPath
	default:
		return origin + prefix + next
	}
}

// AuthCallbackURL is the URL handed to the backend as redirect_to: the
// callback endpoint, carrying next and the flow kind as query parameters.
func AuthCallbackURL(origin, prefix, next string, kind session.FlowKind) string {
	query := url.Values{"next": {SanitizeNext(next, prefix)}}
	if kind != "" {
		query.Set(constants.FlowQueryParam, string(kind))
	}
	return strings.TrimRight(origin, "/") + prefix + constants.CallbackPath + "?" + query.Encode()
}

// # Origin

// OriginPolicy decides which scheme://host the gateway puts in the absolute
// URLs it hands out.
type OriginPolicy struct {
	// Public is used verbatim when set.
	Public string

	// TrustForwarded honours X-Forwarded-Proto and X-Forwarded-Host. Enable it
	// only behind a proxy that overwrites both headers.
	TrustForwarded bool
}

// Origin returns scheme://host for request.
//
// Without a public origin the host comes from the request itself. Forwarded
// headers are client-controlled unless a proxy rewrites them, so they are
// ignored by default.
func (policy OriginPolicy) Origin(request *http.Request) string {
	if policy.Public != "" {
		return strings.TrimRight(policy.Public, "/")
	}

	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}
	host := request.Host

	if policy.TrustForwarded {
		if forwarded := firstValue(request.Header.Get(constants.HeaderXForwardedProt)); forwarded == "http" || forwarded == "https" {
			scheme = forwarded
		}
		if forwarded := firstValue(request.Header.Get(constants.HeaderXForwardedHost)); forwarded != "" {
			host = forwarded
		}
	}

	return scheme + "://" + host
}

func firstValue(header string) string {
	value, _, _ := strings.Cut(header, ",")
	return strings.ToLower(strings.TrimSpace(value))
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders adds security-related HTTP headers to every response.
// The API serves JSON plus per-form stylesheets that host pages load
// cross-origin, so resources are readable from any origin while the
// responses themselves stay locked down for browsers.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Prevent the browser from MIME-sniffing the Content-Type.
		// Stylesheets rely on this plus an explicit text/css type.
		h.Set("X-Content-Type-Options", "nosniff")

		// API responses are never meant to render inside a frame.
		h.Set("X-Frame-Options", "DENY")

		// Published forms and their stylesheets are fetched by embedding
		// pages on other origins.
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Cross-Origin-Resource-Policy", "cross-origin")

		// Control what information is sent in the Referer header.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

/*
Package executor sends HTTP requests for resto.

# Client

A Client wraps net/http with:
  - A 30 second default timeout
  - The "resto HTTP Client/1.0" user agent unless the request sets one
  - Optional TLS settings (skip verification, CA bundle, client certificate)
  - A cookie jar shared by every request it sends

# Results

Execute never fails because the server is unreachable or slow. Transport
errors end up in RequestResult.Error so the TUI can show them next to the
timing of the attempt. Only malformed requests (bad URL, bad method) return
a Go error.

The body is sent for POST, PUT and PATCH only.

# Cookies

AddCookies seeds the jar from Set-Cookie style strings and Cookies lists
what the jar holds for every origin the client has talked to.
*/
package executor

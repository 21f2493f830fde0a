// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Per-IP request budgets and counter windows.
  - Media: Directory keys and upload bounds for the image store.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "marvelis-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Page batches are multipart uploads, so this is generous compared to a pure JSON API.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 60 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// RateLimitWindow is the length of one fixed counting window per client IP.
	RateLimitWindow = time.Minute

	// RateLimitPerWindow is the number of requests allowed per IP per window.
	RateLimitPerWindow = 300
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Media Store

const (
	// CharacterDir is the directory key for character portrait files.
	CharacterDir = "/character"

	// ComicsDir is the directory key for comic covers and page images.
	ComicsDir = "/comics"

	// MaxUploadMemory bounds the in-memory portion of multipart parsing.
	MaxUploadMemory = 32 << 20 // 32 MiB
)

// # Catalog Dates

const (
	// DateLayoutInput is the accepted createDate wire format (d.MM.yyyy).
	DateLayoutInput = "2.01.2006"

	// DateLayoutDisplay is the stored and emitted createDate format (d-MM-yyyy).
	DateLayoutDisplay = "2-01-2006"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
)

// # Redis Prefixes

const (
	RedisPrefixRateLimit = "ratelimit:"
)

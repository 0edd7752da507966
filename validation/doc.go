// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package validation checks request bodies against JSON schemas before they
// are decoded, so shape errors become client errors with field details.
package validation

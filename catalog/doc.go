// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package catalog reads statements, topics, parties and party positions.
//
// The catalog is edited elsewhere; this package only reads it. LoadSnapshot
// performs a fresh read on every call and nothing is cached, so two requests
// with identical answers can see different results after a catalog edit.
package catalog

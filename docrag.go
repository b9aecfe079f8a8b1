// Package docrag provides a retrieval pipeline for documentation websites.
// It crawls documentation pages listed in a YAML manifest, splits their
// text into token-bounded chunks, embeds the chunks into a persisted
// vector index, and answers natural-language queries with the
// best-matching chunks over an MCP stdio tool server.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package docrag

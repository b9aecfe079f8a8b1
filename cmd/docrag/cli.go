package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/ragtools/docrag"
	"github.com/ragtools/docrag/crawl"
	"github.com/ragtools/docrag/mcp"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Manifests docrag.ManifestService
	Crawler   *crawl.Crawler
	Splitter  docrag.Splitter
	Index     docrag.IndexService
	Pages     docrag.DocumentStore
	Server    *mcp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Build BuildCmd `cmd:"" help:"Crawl the manifest corpus and build the vector index"`
	Query QueryCmd `cmd:"" help:"Search the index from the command line"`
	Serve ServeCmd `cmd:"" help:"Serve documentation queries over MCP stdio"`
	Urls  UrlsCmd  `cmd:"" help:"Print the URLs the manifest would crawl"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Manifest     string  `arg:"" optional:"" default:"docs.yaml" help:"Manifest file describing the corpus"`
	Extractor    string  `default:"goquery" enum:"goquery,trafilatura,readability" help:"Content extraction strategy"`
	Fetcher      string  `default:"http" enum:"http,browser" help:"Page fetching strategy (browser renders JavaScript)"`
	PagesDir     string  `name:"pages-dir" help:"Also dump crawled pages as markdown files into this directory"`
	MaxDepth     int     `default:"5" help:"Maximum link depth per root URL"`
	RPS          float64 `name:"rps" default:"1" help:"Requests per second per domain"`
	ChunkSize    int     `default:"8000" help:"Chunk size in tokens"`
	ChunkOverlap int     `default:"500" help:"Token overlap between consecutive chunks"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Query string `arg:"" help:"Question to search the documentation for"`
	K     int    `short:"k" default:"3" help:"Number of chunks to return"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// UrlsCmd is the "urls" subcommand.
type UrlsCmd struct {
	Manifest string `arg:"" optional:"" default:"docs.yaml" help:"Manifest file describing the corpus"`
}

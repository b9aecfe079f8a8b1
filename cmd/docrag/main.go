package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/ragtools/docrag"
	"github.com/ragtools/docrag/crawl"
	"github.com/ragtools/docrag/fs"
	"github.com/ragtools/docrag/gemini"
	"github.com/ragtools/docrag/goquery"
	"github.com/ragtools/docrag/htmltomarkdown"
	dochttp "github.com/ragtools/docrag/http"
	"github.com/ragtools/docrag/mcp"
	"github.com/ragtools/docrag/readability"
	"github.com/ragtools/docrag/rod"
	docslog "github.com/ragtools/docrag/slog"
	"github.com/ragtools/docrag/split"
	"github.com/ragtools/docrag/sqlite"
	"github.com/ragtools/docrag/trafilatura"
	"github.com/ragtools/docrag/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Index file path. Set before calling Run().
	IndexPath string

	// Logger used by all services. When nil, Run creates one writing
	// to stderr so MCP stdio framing on stdout stays clean.
	Logger *slog.Logger

	// Service overrides for end-to-end testing. When set, Run uses
	// these instead of constructing the real implementations.
	Manifests docrag.ManifestService
	Crawler   *crawl.Crawler
	Splitter  docrag.Splitter
	Index     docrag.IndexService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		IndexPath: defaultIndexPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docrag"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docrag --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := m.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}
	deps.Logger = logger

	deps.Manifests = m.Manifests
	if deps.Manifests == nil {
		deps.Manifests = yaml.NewLoader(logger)
	}

	// Commands touching the index need an embedder, which needs the
	// Gemini API.
	needsIndex := cmd == "build" || cmd == "query" || cmd == "serve"

	deps.Index = m.Index
	if deps.Index == nil && needsIndex {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		embedder := gemini.NewEmbedder(client)
		deps.Index = docslog.NewLoggingIndexService(
			sqlite.NewReloadingIndex(m.IndexPath, embedder), logger)
	}

	if cmd == "build" {
		deps.Crawler = m.Crawler
		deps.Splitter = m.Splitter

		if cli.Build.PagesDir != "" {
			dir := filepath.Clean(cli.Build.PagesDir)
			deps.Pages = fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
		}

		if deps.Crawler == nil || deps.Splitter == nil {
			tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}

			if deps.Splitter == nil {
				deps.Splitter = split.NewRecursiveSplitter(tokenCounter,
					split.WithChunkSize(cli.Build.ChunkSize),
					split.WithChunkOverlap(cli.Build.ChunkOverlap))
			}

			if deps.Crawler == nil {
				var extractor docrag.Extractor
				switch cli.Build.Extractor {
				case "trafilatura":
					extractor = trafilatura.NewExtractor(htmltomarkdown.NewConverter())
				case "readability":
					extractor = readability.NewExtractor(htmltomarkdown.NewConverter())
				default:
					extractor = goquery.NewExtractor()
				}

				var base docrag.Fetcher
				if cli.Build.Fetcher == "browser" {
					browser, err := rod.NewFetcher()
					if err != nil {
						fmt.Fprintln(stderr, "Hint: the browser fetcher requires Chrome or Chromium to be installed")
						return fmt.Errorf("failed to launch browser: %w", err)
					}
					base = browser
				} else {
					base = dochttp.NewFetcher()
				}

				fetcher := docslog.NewLoggingFetcher(base, logger)
				defer fetcher.Close()

				deps.Crawler = &crawl.Crawler{
					Fetcher:      fetcher,
					Extractor:    extractor,
					Links:        goquery.NewLinkExtractor(),
					TokenCounter: tokenCounter,
					RateLimiter:  crawl.NewDomainLimiter(cli.Build.RPS),
					MaxDepth:     cli.Build.MaxDepth,
				}
			}
		}
	}

	if cmd == "serve" {
		deps.Server = mcp.NewServer(deps.Index, logger)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for local token counting.
const tokenizerModel = "gemini-2.5-flash"

func defaultIndexPath() string {
	if path := os.Getenv("DOCRAG_INDEX"); path != "" {
		return path
	}
	return "docrag_index.db"
}

package main

import (
	"fmt"

	"github.com/ragtools/docrag"
	"github.com/ragtools/docrag/crawl"
)

// Run executes the build command: crawl the manifest corpus, split it
// into chunks, and rebuild the index from scratch.
func (c *BuildCmd) Run(deps *Dependencies) error {
	manifest, err := deps.Manifests.Load(c.Manifest)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrag.ErrorMessage(err))
		return err
	}

	urls := manifest.URLs()
	if len(urls) == 0 {
		fmt.Fprintf(deps.Stdout, "Manifest %q has no URLs; building an empty index.\n", c.Manifest)
	} else {
		fmt.Fprintf(deps.Stdout, "Crawling %d root URLs\n", len(urls))
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s\n", crawl.TruncateURL(event.URL, 70))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	docs, result, err := deps.Crawler.Crawl(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages (%s, %s), %d failed\n",
		result.Saved, crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens), result.Failed)

	if deps.Pages != nil {
		if err := dumpPages(deps, docs); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing pages: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d pages to %s\n", len(docs), c.PagesDir)
	}

	chunks, err := deps.Splitter.Split(deps.Ctx, docs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Split into %d chunks\n", len(chunks))

	if err := deps.Index.Rebuild(deps.Ctx, chunks); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d chunks\n", len(chunks))
	return nil
}

// dumpPages saves crawled documents to the page store, committing only
// when every document was written.
func dumpPages(deps *Dependencies, docs []*docrag.Document) error {
	for _, doc := range docs {
		if err := deps.Pages.Save(deps.Ctx, doc); err != nil {
			_ = deps.Pages.Abort()
			return err
		}
	}
	return deps.Pages.Commit()
}

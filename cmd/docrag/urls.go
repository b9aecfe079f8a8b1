package main

import (
	"fmt"

	"github.com/ragtools/docrag"
)

// Run executes the urls command: preview what a build would crawl.
func (c *UrlsCmd) Run(deps *Dependencies) error {
	manifest, err := deps.Manifests.Load(c.Manifest)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrag.ErrorMessage(err))
		return err
	}

	urls := manifest.URLs()
	if len(urls) == 0 {
		fmt.Fprintf(deps.Stdout, "Manifest %q has no URLs.\n", c.Manifest)
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	return nil
}

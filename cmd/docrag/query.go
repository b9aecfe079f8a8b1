package main

import (
	"fmt"

	"github.com/ragtools/docrag"
)

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	results, err := deps.Index.Search(deps.Ctx, c.Query, c.K)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrag.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching documentation found.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, docrag.FormatResults(results))
	return nil
}

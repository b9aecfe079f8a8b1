package main

// Run executes the serve command. It blocks until the client closes the
// stdio transport or the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	deps.Logger.Info("starting MCP server on stdio")
	return deps.Server.Run(deps.Ctx)
}

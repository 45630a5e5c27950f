package main

import (
	"fmt"

	"github.com/fwojciec/docmeta/gin"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := gin.NewServer(deps.Metadata, deps.Tasks, deps.Jobs)

	fmt.Fprintf(deps.Stderr, "Listening on %s\n", c.Addr)
	err := srv.ListenAndServe(deps.Ctx, c.Addr)

	// Let in-flight extractions record their final status.
	deps.Jobs.Wait()
	return err
}

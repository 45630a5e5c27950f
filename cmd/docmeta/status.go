package main

import (
	"fmt"

	"github.com/fwojciec/docmeta"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	task, err := deps.Tasks.ReadTask(deps.Ctx, c.TaskID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmeta.ErrorMessage(err))
		return err
	}
	return writeJSON(deps, task)
}

// Run executes the set-status command.
func (c *SetStatusCmd) Run(deps *Dependencies) error {
	task := &docmeta.TaskStatus{
		TaskID:  c.TaskID,
		Status:  c.Status,
		Message: c.Message,
	}
	if len(c.Extra) > 0 {
		task.Extra = make(map[string]any, len(c.Extra))
		for k, v := range c.Extra {
			task.Extra[k] = v
		}
	}

	if err := deps.Tasks.WriteTask(deps.Ctx, task); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmeta.ErrorMessage(err))
		return err
	}
	return writeJSON(deps, task)
}

package main

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fwojciec/docmeta"
	"github.com/fwojciec/docmeta/extract"
)

// batchRecord is one element of the extract output for several URLs.
type batchRecord struct {
	URL      string            `json:"url"`
	Metadata *docmeta.Metadata `json:"metadata,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if len(c.URLs) == 1 {
		md, err := deps.Metadata.ExtractMetadata(deps.Ctx, c.URLs[0])
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docmeta.ErrorMessage(err))
			return err
		}
		return writeJSON(deps, md)
	}

	deps.Service.Concurrency = c.Concurrency
	deps.Service.RateLimiter = extract.NewHostLimiter(c.RPS)

	var mu sync.Mutex
	results := deps.Service.ExtractAll(deps.Ctx, c.URLs, func(p extract.Progress) {
		status := "ok"
		if p.Err != nil {
			status = docmeta.ErrorMessage(p.Err)
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", p.Completed, p.Total, p.URL, status)
	})

	records := make([]batchRecord, len(results))
	var failed int
	for i, r := range results {
		records[i] = batchRecord{URL: r.URL, Metadata: r.Metadata}
		if r.Err != nil {
			records[i].Error = docmeta.ErrorMessage(r.Err)
			failed++
		}
	}

	if err := writeJSON(deps, records); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d extractions failed", failed, len(records))
	}
	return nil
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

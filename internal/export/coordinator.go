// Package export coordinates compiling a state snapshot into a downloadable
// artifact: it names the file, runs the chosen compiler off the caller's
// goroutine, and records export metrics.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/relay-letters/relay/internal/compile"
	"github.com/relay-letters/relay/internal/interview"
	"github.com/relay-letters/relay/internal/metrics"
)

const filenamePrefix = "relay-letter-of-instruction"

// Document is a finished artifact ready to hand to the download mechanism.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
	Pages       int
}

// Coordinator triggers the compilers.
type Coordinator struct {
	metrics *metrics.Metrics
}

func NewCoordinator(m *metrics.Metrics) *Coordinator {
	return &Coordinator{metrics: m}
}

// Filename builds the dated artifact name shared by all export formats.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", filenamePrefix, now.Format("2006-01-02"), ext)
}

// Markdown compiles the text artifact.
func (c *Coordinator) Markdown(ctx context.Context, state interview.State, now time.Time) (Document, error) {
	var doc Document
	err := c.run(ctx, "markdown", func() error {
		doc = Document{
			Filename:    Filename("md", now),
			ContentType: "text/markdown; charset=utf-8",
			Data:        []byte(compile.Text(state, now)),
		}
		return nil
	})
	return doc, err
}

// PDF compiles the paginated artifact.
func (c *Coordinator) PDF(ctx context.Context, state interview.State, now time.Time) (Document, error) {
	var doc Document
	err := c.run(ctx, "pdf", func() error {
		artifact, err := compile.Layout(state, now)
		if err != nil {
			return err
		}
		doc = Document{
			Filename:    Filename("pdf", now),
			ContentType: "application/pdf",
			Data:        artifact.Data,
			Pages:       artifact.Pages,
		}
		return nil
	})
	return doc, err
}

// run executes a compile on its own goroutine. A started run is never
// cancelled: if the caller goes away first, the result is simply discarded
// and the requester retries the export from scratch.
func (c *Coordinator) run(ctx context.Context, format string, fn func() error) error {
	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("compile %s: %w", format, err)
		}
		if c.metrics != nil {
			c.metrics.ExportCompleted(format, time.Since(start).Seconds())
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("compile %s: %w", format, ctx.Err())
	}
}

package ui

import (
	"fmt"
	"io"

	"github.com/desertthunder/artistdb/internal/tasks"
)

// RenderProgress formats an export progress update as a single styled line.
func RenderProgress(u tasks.ProgressUpdate) string {
	switch u.Phase {
	case tasks.CheckDuplicates, tasks.AppendBatch:
		return Help(u.Message)
	default:
		return fmt.Sprintf("%s %s", Help(u.Phase.String()), u.Message)
	}
}

// PrintProgress writes each update received on progress to w until the channel closes.
//
// Returns a channel closed when printing has finished.
func PrintProgress(w io.Writer, progress <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range progress {
			fmt.Fprintln(w, RenderProgress(u))
		}
	}()
	return done
}

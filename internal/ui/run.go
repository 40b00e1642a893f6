package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"structura/internal/driver"
)

// RunBuild runs build while rendering its progress to out. build receives
// the callback to pass as driver.BuildOptions.Progress.
func RunBuild(ctx context.Context, out io.Writer, title string, files []string,
	build func(progress func(driver.FileEvent)) (*driver.BuildReport, error),
) (*driver.BuildReport, error) {
	events := make(chan driver.FileEvent, 64)
	prog := tea.NewProgram(NewProgressModel(title, files, events),
		tea.WithContext(ctx), tea.WithOutput(out), tea.WithInput(nil))

	type outcome struct {
		report *driver.BuildReport
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		report, err := build(func(ev driver.FileEvent) { events <- ev })
		close(events)
		done <- outcome{report, err}
	}()

	if _, err := prog.Run(); err != nil && ctx.Err() == nil {
		// the build keeps going without a display
		go func() {
			for range events {
			}
		}()
	}
	res := <-done
	return res.report, res.err
}

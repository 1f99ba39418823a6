package game

import (
	"fmt"
	"io"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats logs render timing.
func (g *Game) logPerfStats() {
	total := g.renderPerf.Total()
	Logf("=== Render @ Tick %d (speed %dx) | FPS: %d ===", g.tick, g.stepsPerUpdate, rl.GetFPS())
	Logf("Total render time: %s", total.Round(time.Microsecond))

	for _, name := range g.renderPerf.SortedNames() {
		avg := g.renderPerf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		Logf("  %-10s %10s  %5.1f%%", name, avg.Round(time.Microsecond), pct)
	}
	Logf("")
}

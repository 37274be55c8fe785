package move

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-aptprofile/internal/tui"
)

// RenderSuccess renders a summary after a successful flow run.
func RenderSuccess(result *Result) string {
	var b strings.Builder

	if len(result.Moved) == 0 {
		b.WriteString(tui.WarningStyle.Render("Nothing moved"))
		b.WriteString("\n")
	} else {
		b.WriteString(tui.SuccessStyle.Render(fmt.Sprintf("✓ Moved %d module(s)", len(result.Moved))))
		b.WriteString("\n\n")
		if result.Created {
			fmt.Fprintf(&b, "Created profile %s\n", result.To)
		}
		fmt.Fprintf(&b, "%s → %s:\n", result.From, result.To)
		for _, m := range result.Moved {
			fmt.Fprintf(&b, "  - %s\n", m)
		}
	}

	if len(result.Skipped) > 0 {
		b.WriteString("\n")
		b.WriteString(tui.SubtleStyle.Render(fmt.Sprintf("Skipped (not in %s): %s", result.From, strings.Join(result.Skipped, ", "))))
		b.WriteString("\n")
	}

	return b.String()
}

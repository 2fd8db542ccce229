// pkg/script/hud.go
package script

import (
	"fmt"
)

// FPSKey is the HUD line written by HUD
const FPSKey = "fps"

// HUD keeps the frame-rate line up to date
type HUD struct {
	Base
}

// Tick implements Script
func (HUD) Tick(ctx *Context, dt float64) {
	if dt <= 0 {
		return
	}
	ctx.SetText(FPSKey, FormatFPS(dt))
}

// FormatFPS renders the frame rate for a frame time in seconds
func FormatFPS(dt float64) string {
	return fmt.Sprintf("%.1f fps", 1/dt)
}

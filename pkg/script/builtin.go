// pkg/script/builtin.go
package script

import (
	"github.com/google/uuid"
)

// Type ids of the built-in scripts
var (
	PlayerID   = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/opd-ai/mason/script/player"))
	CameraID   = uuid.MustParse("8d20e159-c16e-4a99-9ada-8ee3df8b1758")
	BallsID    = uuid.MustParse("0c483d4c-7650-4bfb-8346-88bb18d06c97")
	BoundaryID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/opd-ai/mason/script/boundary"))
	HUDID      = uuid.MustParse("d67f0d47-66a4-4e17-ac6a-9dcda85e5277")
)

// DefaultRegistry returns a registry holding the built-in scripts
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(PlayerID, "player", func() Script { return &Player{} })
	r.MustRegister(CameraID, "camera", func() Script { return &FreeCamera{} })
	r.MustRegister(BallsID, "balls", func() Script { return &Balls{} })
	r.MustRegister(BoundaryID, "boundary", func() Script { return &Boundary{} })
	r.MustRegister(HUDID, "hud", func() Script { return &HUD{} })
	return r
}

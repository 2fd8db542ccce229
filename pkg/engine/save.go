// pkg/engine/save.go
package engine

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/opd-ai/mason/pkg/scene"
	"github.com/opd-ai/mason/pkg/script"
)

// saveFile is the on-disk form of a running game
type saveFile struct {
	Tick    uint64         `cbor:"1,keyasint"`
	Elapsed float64        `cbor:"2,keyasint"`
	Scene   scene.Snapshot `cbor:"3,keyasint"`
	Scripts []byte         `cbor:"4,keyasint"`
}

// Save writes the scene and every script's state to w
func (g *Game) Save(w io.Writer) error {
	g.lock.RLock()
	defer g.lock.RUnlock()

	if g.Status != GameStatusActive {
		return ErrNotRunning
	}
	scripts, err := script.EncodeAll(g.instances)
	if err != nil {
		return err
	}
	file := saveFile{
		Tick:    g.CurrentTick,
		Elapsed: g.ElapsedTime,
		Scene:   g.Scene.Snapshot(),
		Scripts: scripts,
	}
	if err := cbor.NewEncoder(w).Encode(file); err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	g.logger.Debug(g.ctx, "game saved", "tick", g.CurrentTick, "scripts", len(g.instances))
	return nil
}

// Load replaces the running scene and scripts with a save written by Save.
// Scripts are decoded against the game's registry and restored against the
// loaded scene; their Construct hooks do not run again.
func (g *Game) Load(r io.Reader) error {
	var file saveFile
	if err := cbor.NewDecoder(r).Decode(&file); err != nil {
		return fmt.Errorf("decode save: %w", err)
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	if g.Status != GameStatusActive {
		return ErrNotRunning
	}
	instances, err := script.DecodeAll(g.Registry, file.Scripts)
	if err != nil {
		return err
	}

	graph := scene.Restore(file.Scene)
	ctx := script.NewContext(g.ctx, graph, g.Config, g.EventBus, g.logger)
	for _, key := range g.sctx.TextKeys() {
		ctx.SetText(key, g.sctx.Text(key))
	}
	for _, inst := range instances {
		if restorer, ok := inst.Script.(script.Restorer); ok {
			if err := restorer.Restore(ctx); err != nil {
				return fmt.Errorf("restore script %q: %w", inst.Name, err)
			}
		}
	}

	g.Scene = graph
	g.sctx = ctx
	g.instances = instances
	g.CurrentTick = file.Tick
	g.ElapsedTime = file.Elapsed
	g.logger.Info(g.ctx, "game loaded", "tick", g.CurrentTick, "scripts", len(instances))
	return nil
}

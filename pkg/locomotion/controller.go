// Package locomotion drives the player body from thrust keys and the camera
// rig. A Controller is fed discrete key and mouse events and ticked once per
// frame; each tick rotates the local thrust into world space, resolves
// boundary bounces and integrates momentum with the configured strategy.
//
// A Controller is not safe for concurrent use. The host delivers input and
// ticks sequentially.
package locomotion

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/mason/pkg/camera"
	"github.com/opd-ai/mason/pkg/event"
	"github.com/opd-ai/mason/pkg/logging"
	"github.com/opd-ai/mason/pkg/physics"
	"github.com/opd-ai/mason/pkg/scene"
)

// Scene is the part of the host scene the controller reads and writes
type Scene interface {
	camera.Transformer
	TagLookup
	Position(h scene.Handle) mgl64.Vec3
	Velocity(h scene.Handle) mgl64.Vec3
	SetVelocity(h scene.Handle, velocity mgl64.Vec3)
	Contacts(collider scene.Handle) []scene.Contact
}

// Handles are the pre-built nodes the controller drives
type Handles struct {
	Body     scene.Handle
	Collider scene.Handle
}

// Controller is the per-tick locomotion state machine
type Controller struct {
	scene   Scene
	handles Handles
	rig     *camera.Rig

	thrust     physics.ThrustState
	integrator physics.Integrator
	resolver   Resolver
	momentum   mgl64.Vec3
	syncPivot  bool
	phase      Phase

	ctx    context.Context
	bus    *event.Bus
	logger *logging.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithIntegrator selects the integration strategy. The default is the
// velocity integrator with reference constants.
func WithIntegrator(i physics.Integrator) Option {
	return func(c *Controller) {
		c.integrator = i
	}
}

// WithResolver replaces the boundary resolver
func WithResolver(r Resolver) Option {
	return func(c *Controller) {
		c.resolver = r
	}
}

// WithPivotSync controls whether the rig pivot is moved onto the body every
// tick. Disable it when the pivot is a child of the body.
func WithPivotSync(sync bool) Option {
	return func(c *Controller) {
		c.syncPivot = sync
	}
}

// WithEventBus publishes phase, bounce and contact events on bus
func WithEventBus(bus *event.Bus) Option {
	return func(c *Controller) {
		c.bus = bus
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithContext sets the context carried into log calls
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// New creates a controller for the given body and collider. The rig's
// orientation is committed to its pivot immediately. With the velocity
// strategy the initial momentum is the body's current velocity.
func New(s Scene, handles Handles, rig *camera.Rig, opts ...Option) *Controller {
	c := &Controller{
		scene:      s,
		handles:    handles,
		rig:        rig,
		integrator: physics.NewVelocityIntegrator(),
		resolver:   NewResolver(),
		syncPivot:  true,
		ctx:        context.Background(),
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.momentum = c.currentMomentum()
	rig.Commit(s)
	return c
}

// HandleKeyEvent records a thrust key transition
func (c *Controller) HandleKeyEvent(d physics.Direction, pressed bool) {
	c.thrust.SetDirection(d, pressed)
}

// HandleMouseDelta turns the rig and commits the new facing to its pivot
func (c *Controller) HandleMouseDelta(dx, dy float64) {
	c.rig.ApplyMouseDelta(dx, dy)
	c.rig.Commit(c.scene)
}

// Tick runs one frame of locomotion
func (c *Controller) Tick(dt float64) {
	local := c.thrust.LocalVector()
	body := c.handles.Body
	position := c.scene.Position(body)
	momentum := c.currentMomentum()

	if dt > 0 {
		worldThrust := physics.Rotate(local, c.rig.Orientation())

		var bounced bool
		contacts := c.scene.Contacts(c.handles.Collider)
		momentum, bounced = c.resolver.Resolve(position, momentum, c.handles.Collider, contacts, c.scene)
		c.observe(contacts, bounced)

		if bounced {
			c.logger.Debug(c.ctx, "boundary bounce", "position", position, "momentum", momentum)
			c.publish(event.NewBounceEvent(c, position, momentum))
		} else {
			momentum = c.integrator.Integrate(momentum, worldThrust, dt)
		}
	}

	c.commit(position, momentum, dt)
	c.setPhase(phaseOf(c.thrust, momentum, c.integrator.RestSpeed()))
}

func (c *Controller) currentMomentum() mgl64.Vec3 {
	if c.integrator.Mode() == physics.LinearVelocity {
		return c.scene.Velocity(c.handles.Body)
	}
	return c.momentum
}

// commit performs the tick's single body write and the pivot follow
func (c *Controller) commit(position, momentum mgl64.Vec3, dt float64) {
	body := c.handles.Body
	c.momentum = momentum

	if c.integrator.Mode() == physics.LinearVelocity {
		c.scene.SetVelocity(body, momentum)
	} else {
		if dt > 0 {
			position = position.Add(momentum)
		}
		c.scene.SetPosition(body, position)
	}

	if c.syncPivot {
		c.rig.SetPosition(c.scene, position)
	}
}

// SyncPivot moves a non-parented rig pivot onto the body's current
// position. Hosts call it after their physics step.
func (c *Controller) SyncPivot() {
	if c.syncPivot {
		c.rig.SetPosition(c.scene, c.scene.Position(c.handles.Body))
	}
}

// observe reports active contacts that did not bounce the body
func (c *Controller) observe(contacts []scene.Contact, bounced bool) {
	self := c.handles.Collider
	for _, contact := range contacts {
		if !contact.Active || !contact.Involves(self) {
			continue
		}
		other := contact.Other(self)
		if bounced && c.resolver.IsBoundary(other, c.scene) {
			// The first boundary contact produced the bounce.
			bounced = false
			continue
		}
		c.logger.Debug(c.ctx, "contact observed", "collider", self.String(), "other", other.String())
		c.publish(event.NewContactEvent(c, self, other))
	}
}

func (c *Controller) setPhase(p Phase) {
	if p == c.phase {
		return
	}
	from := c.phase
	c.phase = p
	c.logger.Debug(c.ctx, "locomotion phase changed", "from", from.String(), "to", p.String())
	c.publish(event.NewPhaseEvent(c, from.String(), p.String()))
}

func (c *Controller) publish(e event.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

// Phase returns the phase reached by the last tick
func (c *Controller) Phase() Phase {
	return c.phase
}

// Momentum returns the momentum after the last tick: the per-tick position
// delta for the direct strategy, the body velocity for the velocity one.
func (c *Controller) Momentum() mgl64.Vec3 {
	return c.momentum
}

// SetMomentum overrides the direct-strategy momentum, e.g. after restoring
// a saved scene. For the velocity strategy it writes the body velocity.
func (c *Controller) SetMomentum(momentum mgl64.Vec3) {
	c.momentum = momentum
	if c.integrator.Mode() == physics.LinearVelocity {
		c.scene.SetVelocity(c.handles.Body, momentum)
	}
}

// Thrust returns the current key state
func (c *Controller) Thrust() physics.ThrustState {
	return c.thrust
}

// Rig returns the camera rig
func (c *Controller) Rig() *camera.Rig {
	return c.rig
}

// Integrator returns the integration strategy
func (c *Controller) Integrator() physics.Integrator {
	return c.integrator
}

// Handles returns the driven nodes
func (c *Controller) Handles() Handles {
	return c.handles
}

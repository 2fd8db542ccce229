// pkg/script/state.go
package script

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// envelope is the encoded form of one script instance
type envelope struct {
	ID    uuid.UUID       `cbor:"1,keyasint"`
	Name  string          `cbor:"2,keyasint"`
	State cbor.RawMessage `cbor:"3,keyasint"`
}

var encMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// Encode serialises the exported fields of an instance's script
func Encode(inst Instance) ([]byte, error) {
	state, err := encMode.Marshal(inst.Script)
	if err != nil {
		return nil, fmt.Errorf("failed to encode script %q: %w", inst.Name, err)
	}
	return encMode.Marshal(envelope{ID: inst.ID, Name: inst.Name, State: state})
}

// Decode rebuilds an instance from Encode output. The script type is
// resolved by id, so renamed scripts still load.
func Decode(r *Registry, data []byte) (Instance, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return Instance{}, fmt.Errorf("failed to decode script envelope: %w", err)
	}

	reg, ok := r.Lookup(env.ID)
	if !ok {
		return Instance{}, fmt.Errorf("%w: id %s (%q)", ErrUnknownScript, env.ID, env.Name)
	}

	s := reg.Factory()
	if err := cbor.Unmarshal(env.State, s); err != nil {
		return Instance{}, fmt.Errorf("failed to decode script %q: %w", reg.Name, err)
	}
	return Instance{Registration: reg, Script: s}, nil
}

// EncodeAll serialises several instances in order
func EncodeAll(instances []Instance) ([]byte, error) {
	raw := make([]cbor.RawMessage, 0, len(instances))
	for _, inst := range instances {
		data, err := Encode(inst)
		if err != nil {
			return nil, err
		}
		raw = append(raw, data)
	}
	return encMode.Marshal(raw)
}

// DecodeAll is the inverse of EncodeAll
func DecodeAll(r *Registry, data []byte) ([]Instance, error) {
	var raw []cbor.RawMessage
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode script list: %w", err)
	}
	instances := make([]Instance, 0, len(raw))
	for _, item := range raw {
		inst, err := Decode(r, item)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

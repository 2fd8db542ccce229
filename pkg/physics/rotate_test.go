package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func randomUnitQuat(r *rand.Rand) Quat {
	axis := Vec3{r.Float64()*2 - 1, r.Float64()*2 - 1, r.Float64()*2 - 1}
	if axis.Len() < 1e-6 {
		axis = AxisY
	}
	return AxisAngle(axis.Normalize(), (r.Float64()*2-1)*2*math.Pi)
}

func TestRotate_Identity(t *testing.T) {
	v := Vec3{1, -2, 3}
	got := Rotate(v, Identity())
	assert.True(t, got.ApproxEqualThreshold(v, 1e-12), "identity rotation changed %v to %v", v, got)
}

func TestRotate_KnownAxes(t *testing.T) {
	tests := []struct {
		name     string
		q        Quat
		v        Vec3
		expected Vec3
	}{
		{"yaw_quarter_turn_forward_to_x", AxisAngle(AxisY, math.Pi/2), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"yaw_half_turn", AxisAngle(AxisY, math.Pi), Vec3{0, 0, 1}, Vec3{0, 0, -1}},
		{"pitch_quarter_turn_forward_to_down", AxisAngle(AxisX, math.Pi/2), Vec3{0, 0, 1}, Vec3{0, -1, 0}},
		{"roll_quarter_turn_left_to_up", AxisAngle(AxisZ, math.Pi/2), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.v, tt.q)
			assert.True(t, got.ApproxEqualThreshold(tt.expected, 1e-12), "Rotate() = %v, expected %v", got, tt.expected)
		})
	}
}

func TestRotate_PreservesLength(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		q := randomUnitQuat(r)
		v := Vec3{r.Float64()*20 - 10, r.Float64()*20 - 10, r.Float64()*20 - 10}
		assert.InDelta(t, v.Len(), Rotate(v, q).Len(), 1e-9)
	}
}

func TestRotate_MatchesMatrixForm(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		q := randomUnitQuat(r)
		v := Vec3{r.Float64(), r.Float64(), r.Float64()}
		viaMatrix := q.Mat4().Mul4x1(v.Vec4(0)).Vec3()
		assert.True(t, Rotate(v, q).ApproxEqualThreshold(viaMatrix, 1e-9))
		assert.True(t, Rotate(v, q).ApproxEqualThreshold(q.Rotate(v), 1e-9))
	}
}

func TestRotate_NonUnitQuaternionScales(t *testing.T) {
	q := mgl64.Quat{W: 2, V: Vec3{}}
	got := Rotate(Vec3{0, 0, 1}, q)
	assert.InDelta(t, 4.0, got.Len(), 1e-12, "non-unit orientation must not be silently normalized")
}

func BenchmarkRotate(b *testing.B) {
	q := AxisAngle(Vec3{1, 1, 0}.Normalize(), 0.7)
	v := Vec3{1, 1, 1}
	for i := 0; i < b.N; i++ {
		Rotate(v, q)
	}
}

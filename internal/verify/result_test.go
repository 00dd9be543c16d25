package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Penalize(t *testing.T) {
	res := NewResult("person@example.com")

	res.Penalize(60, "a")
	res.Penalize(60, "b")

	assert.True(t, res.Accepted)
	assert.Equal(t, 0, res.Score, "score is clamped at zero")
	assert.Equal(t, []string{"a", "b"}, res.Reasons)
}

func TestResult_Reject(t *testing.T) {
	res := NewResult("person@example.com")

	res.Reject("custom", 10)
	assert.False(t, res.Accepted)
	assert.Equal(t, 10, res.Score)

	res.Reject("again")
	assert.Equal(t, 0, res.Score)
	assert.True(t, res.HasReason("custom"))
}

func TestResult_Finalize(t *testing.T) {
	res := NewResult("person@example.com")
	res.AddReason("b")
	res.AddReason("a")
	res.AddReason("b")

	res.finalize()

	assert.Equal(t, []string{"b", "a"}, res.Reasons)
}

func TestResult_Meta(t *testing.T) {
	res := &Result{}
	res.AddMeta("k", 1)
	res.AddMeta("k", 2)

	assert.Equal(t, 2, res.Meta["k"])
	assert.Empty(t, res.Email())
}

func TestGate(t *testing.T) {
	res := NewResult("person@example.com")
	res.Score = 69

	assert.False(t, Gate(res, 70))
	assert.False(t, res.Accepted)
	assert.Equal(t, 69, res.Score)
	assert.Equal(t, []string{"score_below_threshold"}, res.Reasons)

	res = NewResult("person@example.com")
	res.Score = 70
	assert.True(t, Gate(res, 70))
}

func TestNewContext(t *testing.T) {
	vc := NewContext("a@b@Example.COM", "a@b@Example.COM")

	assert.Equal(t, "a@b", vc.Local)
	assert.Equal(t, "example.com", vc.Domain)

	vc = NewContext("nope", "nope")
	assert.Equal(t, "nope", vc.Local)
	assert.Empty(t, vc.Domain)
}

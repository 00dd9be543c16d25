package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etkecc/emailscore/internal/verify"
)

type fakeVerifier struct {
	result *verify.Result
	opts   []verify.CallOptions
}

func (f *fakeVerifier) VerifyWith(_ context.Context, _ string, opts verify.CallOptions) *verify.Result {
	f.opts = append(f.opts, opts)
	return f.result
}

func (f *fakeVerifier) MinScore() int { return 70 }

func scored(accepted bool, score int) *verify.Result {
	res := verify.NewResult("person@example.com")
	res.Accepted = accepted
	res.Score = score
	return res
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		value    any
		result   *verify.Result
		opts     []Option
		expected error
	}{
		"accepted":            {value: "person@example.com", result: scored(true, 80)},
		"rejected":            {value: "person@example.com", result: scored(false, 0), expected: ErrNotVerified},
		"not a string":        {value: 42, expected: ErrInvalidEmail},
		"blank":               {value: "   ", expected: ErrRequired},
		"below custom min":    {value: "person@example.com", result: scored(true, 80), opts: []Option{WithMinScore(90)}, expected: ErrNotVerified},
		"meets custom min":    {value: "person@example.com", result: scored(true, 90), opts: []Option{WithMinScore(90)}},
		"custom min is lower": {value: "person@example.com", result: scored(true, 60), opts: []Option{WithMinScore(50)}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v := &fakeVerifier{result: tc.result}

			_, err := Validate(context.Background(), v, tc.value, tc.opts...)

			if tc.expected == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestValidate_WithoutExternal(t *testing.T) {
	v := &fakeVerifier{result: scored(true, 100)}

	_, err := Validate(context.Background(), v, "person@example.com", WithoutExternal())
	require.NoError(t, err)
	_, err = Validate(context.Background(), v, "person@example.com")
	require.NoError(t, err)

	assert.Equal(t, []verify.CallOptions{{SkipExternal: true}, {SkipExternal: false}}, v.opts)
}

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *exitErr
	require.True(t, errors.As(err, &ee), "got %v", err)
	return ee.code
}

func TestScreen_Text(t *testing.T) {
	out, err := execute(t, "phq9", "3", "3", "3", "3", "3", "3", "3", "3", "3")
	require.NoError(t, err)
	assert.Equal(t, "score=27 severity=severe\n", out)
}

func TestScreen_JSON(t *testing.T) {
	out, err := execute(t, "--output", "json", "gad7", "1", "1", "1", "1", "1", "1", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":7,"severity":"mild"}`, out)
}

func TestScreen_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"too few", []string{"phq9", "1", "1"}, "9 answers are required"},
		{"none", []string{"gad7"}, "7 answers are required"},
		{"not a number", []string{"gad7", "1", "1", "1", "1", "1", "1", "x"}, "7 answers are required"},
		{"unknown instrument", []string{"bdi", "1"}, `unknown instrument "bdi"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(t, err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestScreen_BadOutputFormat(t *testing.T) {
	_, err := execute(t, "-o", "yaml", "gad7", "0", "0", "0", "0", "0", "0", "0")
	assert.Equal(t, 1, exitCode(t, err))
}

func TestScreen_NegativeAnswers(t *testing.T) {
	out, err := execute(t, "gad7", "-1", "0", "0", "0", "0", "0", "0")
	require.NoError(t, err)
	assert.Equal(t, "score=-1 severity=minimal\n", out)

	out, err = execute(t, "--", "phq9", "-3", "3", "3", "3", "3", "3", "3", "3", "3")
	require.NoError(t, err)
	assert.Equal(t, "score=21 severity=severe\n", out)
}

func TestScreen_Overflow(t *testing.T) {
	_, err := execute(t, "gad7", "9223372036854775807", "1", "0", "0", "0", "0", "0")
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, err.Error(), "7 answers are required")
}

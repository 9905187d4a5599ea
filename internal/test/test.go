// Package test holds assertions shared by package tests.
package test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/rulematch"
)

// ExpectErrorCode fails the test unless e is or wraps a *rulematch.Error with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) *rulematch.Error {
	t.Helper()
	require.Error(t, e, "expecting error code %d", expected)
	var ee *rulematch.Error
	require.True(t, errors.As(e, &ee), "expecting *rulematch.Error with code %d, got %T: %v", expected, e, e)
	require.Equal(t, expected, ee.Code, "unexpected error: %s", ee.Message)
	return ee
}

// ExpectErrorPos fails the test unless e is a *rulematch.Error with expected code and position.
func ExpectErrorPos(t testing.TB, expected, line, col int, e error) {
	t.Helper()
	ee := ExpectErrorCode(t, expected, e)
	require.Equal(t, line, ee.Line, "error line: %s", ee.Message)
	require.Equal(t, col, ee.Col, "error col: %s", ee.Message)
}

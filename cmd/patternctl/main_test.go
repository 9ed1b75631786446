package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platformeng/patternctl/internal/catalog"
	"github.com/platformeng/patternctl/internal/logger"
)

func newTestApp(t *testing.T) *appContext {
	t.Helper()

	c, err := catalog.Load()
	require.NoError(t, err)

	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	return newAppContext(c, log)
}

func executeCommand(t *testing.T, app *appContext, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(app)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

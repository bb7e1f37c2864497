package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
)

// fakeRunner records the actions it is asked to run.
type fakeRunner struct {
	setupCalls int
	actions    []domain.Action
	runErr     error
	status     driving.RunStatus
}

func (r *fakeRunner) Setup(_ context.Context) error {
	r.setupCalls++
	return nil
}

func (r *fakeRunner) Run(_ context.Context, action domain.Action) error {
	r.actions = append(r.actions, action)
	return r.runErr
}

func (r *fakeRunner) Status() driving.RunStatus {
	return r.status
}

func setupRunnerTest(runner *fakeRunner) func() {
	oldRunner := newRunner
	oldCfg := setupConfig(nil)
	newRunner = func(_, _ string) (driving.IngestRunner, func(), error) {
		return runner, func() {}, nil
	}
	return func() {
		newRunner = oldRunner
		oldCfg()
	}
}

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest <pattern>", ingestCmd.Use)
}

func TestIngestCmd_RunsSetupThenAdd(t *testing.T) {
	runner := &fakeRunner{status: driving.RunStatus{FilesProcessed: 3, FilesSkipped: 1}}
	cleanup := setupRunnerTest(runner)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "/data/*.txt"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 1, runner.setupCalls)
	assert.Equal(t, []domain.Action{domain.ActionAdd}, runner.actions)
	assert.Contains(t, buf.String(), "Processed 3 files (1 skipped, 0 failed)")
}

func TestIngestCmd_PassesPatternAndCategory(t *testing.T) {
	oldRunner := newRunner
	oldCfg := setupConfig(nil)
	defer func() {
		newRunner = oldRunner
		oldCfg()
	}()

	var gotPattern, gotCategory string
	newRunner = func(pattern, category string) (driving.IngestRunner, func(), error) {
		gotPattern, gotCategory = pattern, category
		return &fakeRunner{}, func() {}, nil
	}

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", "/data/**/*.pdf", "--category", "manuals"})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestCategory = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "/data/**/*.pdf", gotPattern)
	assert.Equal(t, "manuals", gotCategory)
}

func TestIngestCmd_RequiresPattern(t *testing.T) {
	cleanup := setupConfig(nil)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestRemoveCmd_RunsRemove(t *testing.T) {
	runner := &fakeRunner{}
	cleanup := setupRunnerTest(runner)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"remove", "/data/a.txt"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, []domain.Action{domain.ActionRemove}, runner.actions)
	assert.Zero(t, runner.setupCalls)
}

func TestPurgeCmd_RefusesWithoutForce(t *testing.T) {
	runner := &fakeRunner{}
	cleanup := setupRunnerTest(runner)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"purge"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.ErrorContains(t, err, "--force")
	assert.Empty(t, runner.actions)
}

func TestPurgeCmd_RunsRemoveAllWithForce(t *testing.T) {
	runner := &fakeRunner{}
	cleanup := setupRunnerTest(runner)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"purge", "--force"})
	defer func() {
		rootCmd.SetArgs(nil)
		purgeForce = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, []domain.Action{domain.ActionRemoveAll}, runner.actions)
	assert.Contains(t, buf.String(), "purged")
}

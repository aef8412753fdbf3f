package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	main "github.com/Holyblitz/Sysiphe-v2/cmd/sysiphe"
	"github.com/Holyblitz/Sysiphe-v2/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(stdout, stderr *bytes.Buffer, targets *mock.TargetService) *main.Dependencies {
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Config:  sysiphe.DefaultConfig(),
		Targets: targets,
	}
}

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("imports records from a CSV file", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "companies.csv")
		require.NoError(t, os.WriteFile(file, []byte(
			"legal_name,state,postcode\nAcme Steel Pty Ltd,NSW,2000\nWidget Works Pty Ltd,VIC,3000\n",
		), 0644))

		var created []*sysiphe.Target
		targets := &mock.TargetService{
			CreateTargetFn: func(ctx context.Context, target *sysiphe.Target) error {
				created = append(created, target)
				return nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		cmd := &main.ImportCmd{File: file}

		err := cmd.Run(newDeps(stdout, stderr, targets))

		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, "Acme Steel Pty Ltd", created[0].Name)
		assert.Contains(t, stdout.String(), "Imported 2 of 2")
		assert.Empty(t, stderr.String())
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		cmd := &main.ImportCmd{File: filepath.Join(t.TempDir(), "missing.csv")}

		err := cmd.Run(newDeps(stdout, stderr, &mock.TargetService{}))
		require.Error(t, err)
		assert.NotEmpty(t, stderr.String())
	})
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes contacts as CSV with names resolved", func(t *testing.T) {
		t.Parallel()

		targets := &mock.TargetService{
			FindOutcomesFn: func(ctx context.Context, filter sysiphe.OutcomeFilter) ([]*sysiphe.Outcome, error) {
				return []*sysiphe.Outcome{{
					TargetID:   "t1",
					Status:     sysiphe.StatusFound,
					Domain:     "acme-steel.com.au",
					Email:      "info@acme-steel.com.au",
					Confidence: 92,
				}}, nil
			},
			FindTargetByIDFn: func(ctx context.Context, id string) (*sysiphe.Target, error) {
				return &sysiphe.Target{ID: id, Name: "Acme Steel Pty Ltd"}, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		cmd := &main.ExportCmd{}

		err := cmd.Run(newDeps(stdout, stderr, targets))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "info@acme-steel.com.au")
		assert.Contains(t, stdout.String(), "Acme Steel Pty Ltd")
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		cmd := &main.ExportCmd{Status: "bogus"}

		err := cmd.Run(newDeps(stdout, stderr, &mock.TargetService{}))
		require.Error(t, err)
		assert.Equal(t, sysiphe.EINVALID, sysiphe.ErrorCode(err))
	})
}

func TestStatusCmd_Run(t *testing.T) {
	t.Parallel()

	targets := &mock.TargetService{
		CountByStatusFn: func(ctx context.Context) (map[sysiphe.Status]int, error) {
			return map[sysiphe.Status]int{
				sysiphe.StatusPending: 3,
				sysiphe.StatusFound:   2,
			}, nil
		},
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := &main.StatusCmd{}

	err := cmd.Run(newDeps(stdout, stderr, targets))

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "pending")
	assert.Contains(t, stdout.String(), "found")
	assert.Contains(t, stdout.String(), "total")
}

func TestGuessCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints tokens and candidates in order", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		cmd := &main.GuessCmd{Name: "Acme Steel Pty Ltd"}

		err := cmd.Run(newDeps(stdout, stderr, nil))

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "tokens: acme steel")
		assert.Contains(t, output, "acmesteel.com.au")
		assert.Contains(t, output, "acme-steel.com.au")
	})

	t.Run("reports names that normalize to nothing", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		cmd := &main.GuessCmd{Name: "Pty Ltd"}

		err := cmd.Run(newDeps(stdout, stderr, nil))
		require.Error(t, err)
		assert.Equal(t, sysiphe.EINVALID, sysiphe.ErrorCode(err))
	})
}

func TestClassifyCmd_Run(t *testing.T) {
	t.Parallel()

	targets := &mock.TargetService{
		FindOutcomesFn: func(ctx context.Context, filter sysiphe.OutcomeFilter) ([]*sysiphe.Outcome, error) {
			return []*sysiphe.Outcome{{
				TargetID: "t1",
				Status:   sysiphe.StatusFound,
				Email:    "info@acme-steel.com.au",
			}}, nil
		},
		FindTargetByIDFn: func(ctx context.Context, id string) (*sysiphe.Target, error) {
			return &sysiphe.Target{ID: id, Name: "Acme Steel Pty Ltd"}, nil
		},
	}
	classifier := &mock.Classifier{
		ClassifyFn: func(ctx context.Context, target *sysiphe.Target, outcome *sysiphe.Outcome) (*sysiphe.Classification, error) {
			return &sysiphe.Classification{Relevant: true, Rationale: "company-owned domain"}, nil
		},
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	deps := newDeps(stdout, stderr, targets)
	deps.Classifier = classifier
	cmd := &main.ClassifyCmd{Limit: 10}

	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "relevant")
	assert.Contains(t, stdout.String(), "company-owned domain")
}

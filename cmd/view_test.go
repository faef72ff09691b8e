package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"streamlens.dev/pkg/streamlens/internal/domain"
	domainmocks "streamlens.dev/pkg/streamlens/internal/domain/mocks"
	m "streamlens.dev/pkg/streamlens/internal/model"
)

func TestViewCmd_UsesRootEventsFlagByDefault(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Events == m.Path(".streamlens") && args.Session == ""
	})).Return(nil)

	cmd.SetArgs([]string{"view"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestViewCmd_RootEventsFlagIsPassedThrough(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Events == m.Path("./sessions")
	})).Return(nil)

	cmd.SetArgs([]string{"view", "--events", "./sessions"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestViewCmd_SessionFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Session == m.Path(".streamlens/session-1.log")
	})).Return(nil)

	cmd.SetArgs([]string{"view", "-s", ".streamlens/session-1.log"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestViewCmd_PositionalArgsAreRejected(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"view", "extra"})
	err := cmd.Execute()
	require.Error(t, err)
}

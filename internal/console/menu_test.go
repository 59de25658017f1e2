package console

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_DispatchesAndReturnsOnZero(t *testing.T) {
	c, out := newTestConsole("2\n1\n0\n")

	var calls []string
	m := Menu{
		Title: "Members",
		Items: []MenuItem{
			{Label: "List", Action: func(context.Context) error { calls = append(calls, "list"); return nil }},
			{Label: "Create", Action: func(context.Context) error { calls = append(calls, "create"); return nil }},
		},
	}

	require.NoError(t, c.Run(context.Background(), m))
	assert.Equal(t, []string{"create", "list"}, calls)
	assert.Contains(t, out.String(), "1. List")
	assert.Contains(t, out.String(), "0. Back")
}

func TestRun_PrintsErrorsAndContinues(t *testing.T) {
	c, out := newTestConsole("9\nx\n1\n0\n")

	m := Menu{
		Title:     "Main Menu",
		ExitLabel: "Exit",
		Items: []MenuItem{
			{Label: "Fail", Action: func(context.Context) error { return errors.New("member not found") }},
		},
	}

	require.NoError(t, c.Run(context.Background(), m))
	s := out.String()
	assert.Contains(t, s, `Error: invalid option "9"`)
	assert.Contains(t, s, `Error: invalid option "x"`)
	assert.Contains(t, s, "Error: member not found")
	assert.Contains(t, s, "0. Exit")
}

func TestRun_StopsWhenInputEnds(t *testing.T) {
	c, _ := newTestConsole("1\n")

	m := Menu{
		Title: "Members",
		Items: []MenuItem{
			{Label: "Create", Action: func(context.Context) error {
				_, err := c.Prompt("First name")
				return err
			}},
		},
	}

	err := c.Run(context.Background(), m)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestRun_NestedMenus(t *testing.T) {
	c, out := newTestConsole("1\n1\n0\n0\n")

	var ran bool
	sub := Menu{
		Title: "Attendance",
		Items: []MenuItem{{Label: "Check in", Action: func(context.Context) error { ran = true; return nil }}},
	}
	main := Menu{
		Title: "Main Menu",
		Items: []MenuItem{{Label: "Attendance", Action: func(ctx context.Context) error { return c.Run(ctx, sub) }}},
	}

	require.NoError(t, c.Run(context.Background(), main))
	assert.True(t, ran)
	assert.Equal(t, 2, strings.Count(out.String(), "=== Main Menu ==="))
}

func TestRun_CancelledContext(t *testing.T) {
	c, _ := newTestConsole("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, Menu{Title: "Main Menu"})
	assert.ErrorIs(t, err, context.Canceled)
}

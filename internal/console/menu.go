package console

import (
	"context"
	"errors"
	"strconv"
)

type MenuItem struct {
	Label  string
	Action func(ctx context.Context) error
}

// Menu is a numbered list of actions. Items are keyed 1..n in order and
// "0" leaves the menu.
type Menu struct {
	Title     string
	Items     []MenuItem
	ExitLabel string
}

// Run shows m until the operator picks "0" or the input ends. Action
// errors are printed and the loop continues.
func (c *Console) Run(ctx context.Context, m Menu) error {
	exit := m.ExitLabel
	if exit == "" {
		exit = "Back"
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.Header(m.Title)
		for i, item := range m.Items {
			c.Printf("%d. %s\n", i+1, item.Label)
		}
		c.Printf("0. %s\n", exit)

		choice, err := c.readLine("Select an option")
		if err != nil {
			return err
		}
		if choice == "0" {
			return nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(m.Items) {
			c.Errorf("invalid option %q", choice)
			continue
		}

		if err := m.Items[n-1].Action(ctx); err != nil {
			if errors.Is(err, ErrInputClosed) || errors.Is(err, context.Canceled) {
				return err
			}
			c.Errorf("%v", err)
		}
	}
}

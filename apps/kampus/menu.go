package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/kampushq/kampus/core/nav"
)

func (cli *commandLine) menu(route string, directsGroup, preschool bool) error {
	if err := cli.requireSession(); err != nil {
		return err
	}

	unread, err := cli.client.UnreadCount(context.Background())
	if err != nil {
		cli.logger.Warn(fmt.Sprintf("fetching unread count: %v", err))
		unread = 0
	}

	usr := cli.client.Session().User()
	menu := nav.BuildMenu(usr, nav.Flags{
		DirectsGroup:            directsGroup,
		HasPreschoolAssignments: preschool,
	}, unread)

	state := nav.LoadState(cli.prefs)
	if route != "" {
		state.SyncToRoute(menu, route)
		if err = state.Save(cli.prefs); err != nil {
			return err
		}
	}

	for _, it := range menu {
		cli.printItem(it, 0, state)
	}
	return nil
}

func (cli *commandLine) printItem(it nav.Item, depth int, state nav.State) {
	line := strings.Repeat("  ", depth) + it.Label
	if it.Badge > 0 {
		line += fmt.Sprintf(" (%d)", it.Badge)
	}
	if len(it.Children) > 0 && depth == 0 && state.ExpandedMenu == it.Label {
		line += " [open]"
	}
	fmt.Fprintln(cli.out, line)
	for _, child := range it.Children {
		cli.printItem(child, depth+1, state)
	}
}

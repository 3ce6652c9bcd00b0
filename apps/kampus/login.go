package main

import (
	"context"
	"fmt"

	"github.com/kampushq/kampus/core/user"
)

var newSessionFunc = user.NewSession // mockable

func (cli *commandLine) login(username, password string) error {
	sess, err := cli.client.Login(context.Background(), username, password)
	if err != nil {
		return err
	}
	if err = cli.prefs.Set(sessionKey, sess.Token); err != nil {
		return err
	}
	usr := sess.User()
	if role := user.PrimaryRole(usr.Roles); role != "" {
		fmt.Fprintf(cli.out, "Logged in as %s (%s)\n", usr.Username, role)
	} else {
		fmt.Fprintf(cli.out, "Logged in as %s\n", usr.Username)
	}
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.prefs.Delete(sessionKey); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Logged out")
	return nil
}

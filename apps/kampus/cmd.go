package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/kampushq/kampus/core"
	"github.com/kampushq/kampus/core/report"
	"github.com/kampushq/kampus/services/kampusapi"
	"github.com/kampushq/kampus/storage/prefs"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in; run: kampus login -username USERNAME")
)

// sessionKey is where the API token lives in the prefs store between runs.
const sessionKey = "session.token"

var commandNames = []string{"login", "logout", "students", "report", "menu", "history"}

type commandLine struct {
	conf     *core.Config
	logger   core.Logger
	client   *kampusapi.Client
	prefs    *prefs.Store
	mailSvc  core.EmailService
	validate *validator.Validate
	out      io.Writer

	reportOpts []report.Option // polling overrides; empty in production
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME                    - log into the Kampus API (password is prompted)")
	fmt.Fprintln(cli.out, "  logout                                      - forget the saved session")
	fmt.Fprintln(cli.out, "  students [-search S] [-group N] [-inactive] - list students")
	fmt.Fprintln(cli.out, "  report KIND [flags]                         - generate a report and save it locally")
	fmt.Fprintln(cli.out, "  menu [-route R]                             - print the navigation menu for the logged-in user")
	fmt.Fprintln(cli.out, "  history [-n N]                              - list recent report runs")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch cmd := args[1]; cmd {
	case "login":
		loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
		loginCmd.SetOutput(cli.out)
		username := loginCmd.String("username", "", "The username to log in as. The password will be prompted next.")
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *username == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*username, string(pwd))

	case "logout":
		return cli.logout()

	case "students":
		studentsCmd := flag.NewFlagSet("students", flag.ContinueOnError)
		studentsCmd.SetOutput(cli.out)
		search := studentsCmd.String("search", "", "Match against name or document number.")
		group := studentsCmd.Int("group", 0, "Only students of this group.")
		inactive := studentsCmd.Bool("inactive", false, "Include inactive students.")
		page := studentsCmd.Int("page", 1, "Page to fetch.")
		size := studentsCmd.Int("size", 0, "Page size.")
		if err := studentsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.students(*search, *group, *inactive, *page, *size)

	case "report":
		if len(args) < 3 {
			cli.printReportUsage()
			return errHelp
		}
		reportCmd := flag.NewFlagSet("report", flag.ContinueOnError)
		reportCmd.SetOutput(cli.out)
		group := reportCmd.Int("group", 0, "Group id (enrollment-list, group-bulletin).")
		period := reportCmd.Int("period", 0, "Academic period id.")
		year := reportCmd.Int("year", 0, "Academic year id (enrollment-list).")
		enrollment := reportCmd.Int("enrollment", 0, "Enrollment id (student-bulletin).")
		emailTo := reportCmd.String("email-to", "", "Also email the generated file to this address.")
		if err := reportCmd.Parse(args[3:]); err != nil {
			return err
		}
		return cli.report(args[2], reportFlags{
			groupID:      *group,
			periodID:     *period,
			yearID:       *year,
			enrollmentID: *enrollment,
			emailTo:      *emailTo,
		})

	case "menu":
		menuCmd := flag.NewFlagSet("menu", flag.ContinueOnError)
		menuCmd.SetOutput(cli.out)
		route := menuCmd.String("route", "", "Active route; the submenu owning it is expanded and remembered.")
		directsGroup := menuCmd.Bool("directs-group", false, "The logged-in teacher directs a group.")
		preschool := menuCmd.Bool("preschool", false, "The logged-in teacher has preschool assignments.")
		if err := menuCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.menu(*route, *directsGroup, *preschool)

	case "history":
		historyCmd := flag.NewFlagSet("history", flag.ContinueOnError)
		historyCmd.SetOutput(cli.out)
		limit := historyCmd.Int("n", 10, "Number of entries to show.")
		if err := historyCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.history(*limit)

	default:
		cli.printUsage()
		if match := suggestCommand(cmd); match != "" {
			fmt.Fprintf(cli.out, "\nunknown command %q; did you mean %q?\n", cmd, match)
		}
		return errHelp
	}
}

// suggestCommand finds the closest known command to a mistyped one.
func suggestCommand(cmd string) string {
	var best string
	var bestRatio float64
	for _, name := range commandNames {
		m := difflib.NewMatcher(strings.Split(cmd, ""), strings.Split(name, ""))
		if r := m.Ratio(); r > bestRatio {
			best, bestRatio = name, r
		}
	}
	if bestRatio < 0.6 {
		return ""
	}
	return best
}

// restoreSession loads a previously saved token into the API client.
// An expired or invalid token is dropped silently; commands that need
// authentication fail with errNotLoggedIn.
func (cli *commandLine) restoreSession() {
	token, ok := cli.prefs.Get(sessionKey)
	if !ok {
		return
	}
	sess, err := newSessionFunc(token)
	if err != nil || sess.Expired() {
		_ = cli.prefs.Delete(sessionKey)
		return
	}
	cli.client.UseSession(sess)
}

func (cli *commandLine) requireSession() error {
	if cli.client.Session().Token == "" {
		return errNotLoggedIn
	}
	return nil
}

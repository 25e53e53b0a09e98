package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/course"
	"github.com/kelasdev/kelas/core/onboarding"
	"github.com/kelasdev/kelas/storage"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf          *core.Config
	store         *storage.Storage
	courseSvc     *course.Service
	onboardingSvc *onboarding.Service
	in            io.Reader
	out           io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, version, redo, reset, up-to, down-to...)")
	_, _ = fmt.Fprintln(cli.out, "  seed - create the sample courses")
	_, _ = fmt.Fprintln(cli.out, "  onboard -identity ID [-email EMAIL] [-name NAME] [-lang en|id] - answer the onboarding questionnaire for a user")
	_, _ = fmt.Fprintln(cli.out, "  resetonboarding -identity ID - ask the onboarding questionnaire again to a user")
	_, _ = fmt.Fprintln(cli.out, "  token -identity ID [-email EMAIL] [-name NAME] [-admin] [-ttl DURATION] - issue an API token")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	onboardCmd := flag.NewFlagSet("onboard", flag.ContinueOnError)
	onboardCmd.SetOutput(cli.out)
	onboardIdentity := onboardCmd.String("identity", "", "The external identity of the user.")
	onboardEmail := onboardCmd.String("email", "", "The user's email.")
	onboardName := onboardCmd.String("name", "", "The user's name.")
	onboardLang := onboardCmd.String("lang", string(onboarding.English), "The questionnaire language: en or id.")

	resetCmd := flag.NewFlagSet("resetonboarding", flag.ContinueOnError)
	resetCmd.SetOutput(cli.out)
	resetIdentity := resetCmd.String("identity", "", "The external identity of the user.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenCmd.SetOutput(cli.out)
	tokenIdentity := tokenCmd.String("identity", "", "The external identity of the user (token subject).")
	tokenEmail := tokenCmd.String("email", "", "The user's email.")
	tokenName := tokenCmd.String("name", "", "The user's name.")
	tokenAdmin := tokenCmd.Bool("admin", false, "Grant the admin role.")
	tokenTTL := tokenCmd.Duration("ttl", 24*time.Hour, "The token validity.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(ctx, args[2:])
	case "seed":
		return cli.seed(ctx)
	case "onboard":
		if err := onboardCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *onboardIdentity == "" {
			onboardCmd.Usage()
			return errHelp
		}
		if !isTerminalFunc(int(syscall.Stdin)) {
			return errors.New("onboard must be run from an interactive terminal")
		}
		ident := onboarding.Identity{ExternalID: *onboardIdentity, Email: *onboardEmail, Name: *onboardName}
		return cli.onboard(ctx, ident, onboarding.ParseLanguage(*onboardLang))
	case "resetonboarding":
		if err := resetCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetIdentity == "" {
			resetCmd.Usage()
			return errHelp
		}
		return cli.onboardingSvc.Reset(ctx, *resetIdentity)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenIdentity == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenIdentity, *tokenEmail, *tokenName, *tokenAdmin, *tokenTTL)
	default:
		cli.printUsage()
		return errHelp
	}
}

func newCommandLine(conf *core.Config, store *storage.Storage, courseSvc *course.Service, onboardingSvc *onboarding.Service) *commandLine {
	return &commandLine{
		conf:          conf,
		store:         store,
		courseSvc:     courseSvc,
		onboardingSvc: onboardingSvc,
		in:            os.Stdin,
		out:           os.Stdout,
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core/onboarding"
)

var errOnboardingAborted = errors.New("onboarding aborted")

// onboard walks the user through the questionnaire on the terminal.
// Answers are option numbers; "b" goes back one question and "q" quits without saving.
func (cli *commandLine) onboard(ctx context.Context, ident onboarding.Identity, lang onboarding.Language) error {
	flow := onboarding.NewFlow(cli.onboardingSvc.Submitter(ident))
	scanner := bufio.NewScanner(cli.in)

	for !flow.Complete() {
		view := flow.Current().In(lang)
		_, _ = fmt.Fprintf(cli.out, "\n(%d/%d) %s\n", flow.Step()+1, len(onboarding.Questions), view.Question)
		for i, opt := range view.Options {
			_, _ = fmt.Fprintf(cli.out, "  %d. %s\n", i+1, opt)
		}
		_, _ = fmt.Fprint(cli.out, "> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "reading answer")
			}
			return errOnboardingAborted
		}

		switch input := strings.TrimSpace(scanner.Text()); input {
		case "q":
			return errOnboardingAborted
		case "b":
			flow.Previous()
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(view.Options) {
				_, _ = fmt.Fprintf(cli.out, "please enter a number between 1 and %d\n", len(view.Options))
				continue
			}
			if err = flow.Answer(view.Options[n-1]); err != nil {
				return err
			}
			if err = flow.Next(ctx); err != nil {
				return err
			}
		}
	}

	_, _ = fmt.Fprintln(cli.out, "\nonboarding complete")
	return nil
}

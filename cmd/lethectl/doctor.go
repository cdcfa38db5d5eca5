package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/lethe-installer/internal/deps"
	"github.com/conn-castle/lethe-installer/internal/doctor"
	"github.com/conn-castle/lethe-installer/internal/messages"
	"github.com/conn-castle/lethe-installer/internal/status"
)

func newDoctorCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolvePaths()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, p.Home)

			runner := newRunner()
			results := doctor.Run(p, deps.NewInstaller(runner, nil), status.NewProbe(runner, p))
			for _, r := range results {
				printResult(out, r)
			}

			if doctor.HasFailure(results) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return errors.New(messages.DoctorFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
}

var statusLabels = map[doctor.Status]func(string, ...interface{}) string{
	doctor.StatusOK:   color.GreenString,
	doctor.StatusWarn: color.YellowString,
	doctor.StatusFail: color.RedString,
}

var statusText = map[doctor.Status]string{
	doctor.StatusOK:   messages.DoctorStatusOKLabel,
	doctor.StatusWarn: messages.DoctorStatusWarnLabel,
	doctor.StatusFail: messages.DoctorStatusFailLabel,
}

func printResult(out io.Writer, r doctor.Result) {
	label := statusText[r.Status]
	if paint, ok := statusLabels[r.Status]; ok {
		label = paint(label)
	}
	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, label, r.CheckName, r.Message)
	if r.Recommendation == "" {
		return
	}
	// Continuation lines align under the first.
	prefix := messages.DoctorRecommendationPrefix
	for _, line := range strings.Split(r.Recommendation, "\n") {
		_, _ = fmt.Fprintf(out, "%s%s\n", prefix, line)
		prefix = messages.DoctorRecommendationIndent
	}
}

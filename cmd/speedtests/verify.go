package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"speedtests/internal/config"
	"speedtests/internal/dataset"
	"speedtests/internal/reduce"
	"speedtests/internal/telemetry"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// errVerifyFailed is returned when a variant fails or differs from the first.
var errVerifyFailed = errors.New("variant verification failed")

func newVerifyCmd() *cobra.Command {
	var noColor bool

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that every variant computes the same total",
		Long: `Runs each registered variant once on the sample and compares the totals.
Exits non-zero if any variant differs from the loop variant.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, noColor)
		},
	}
	verifyCmd.Flags().String("policy", "exact", "Overflow policy: exact, wrap, wrap32 or checked")
	verifyCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return verifyCmd
}

func runVerify(cmd *cobra.Command, noColor bool) error {
	s := config.Current()
	policy, err := reduce.ParsePolicy(s.Policy)
	if err != nil {
		return err
	}

	sample, err := dataset.Load(appFs, s.DataPath)
	if err != nil {
		telemetry.LogError("Failed to load sample", err, "path", s.DataPath)
		return err
	}

	renderer := lipgloss.NewRenderer(cmd.OutOrStdout())
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	okStyle := renderer.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle := renderer.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	headerStyle := renderer.NewStyle().Foreground(lipgloss.Color("243"))

	fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render(
		fmt.Sprintf("%s: %d elements, policy %s", s.DataPath, sample.Len(), policy)))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tTOTAL\tSTATUS")

	var (
		reference reduce.Total
		haveRef   bool
		mismatch  bool
	)
	for _, v := range reduce.Variants() {
		total, err := v.New(sample, policy)()
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t%s\n", v.Name, failStyle.Render("ERROR: "+err.Error()))
			mismatch = true
			continue
		}

		status := okStyle.Render("OK")
		switch {
		case !haveRef:
			reference, haveRef = total, true
		case !total.Equal(reference):
			status = failStyle.Render("MISMATCH")
			mismatch = true
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, total, status)
	}
	w.Flush()

	if mismatch {
		return errVerifyFailed
	}
	return nil
}

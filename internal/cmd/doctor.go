package cmd

import (
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/health"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
	"github.com/felixgeelhaar/uniattend/internal/ux"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check storage, backend and session",
	Long: `Run diagnostics on everything uniattend depends on.

Checks include:
  storage  the session store can be written and read back
  backend  the API URL answers
  session  someone is signed in and the access token is still valid

Examples:
  uniattend doctor
  uniattend doctor --format json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().Duration("timeout", health.DefaultTimeout, "time limit for each check")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	m := health.NewManager().WithTimeout(timeout)
	m.AddChecker(health.NewStorageChecker(a.Storage, a.Config.Storage.Backend))
	m.AddChecker(health.NewBackendChecker(a.Config.APIURL, &http.Client{Timeout: a.Config.HTTPTimeout}))
	m.AddChecker(health.NewSessionChecker(a.Session))

	report := m.Report(cmd.Context())
	for _, name := range report.Order {
		r := report.Checks[name]
		a.Logger.DebugContext(cmd.Context(), "health check", "check", name, "status", r.Status.String(), "latency", r.Latency)
	}
	return a.Output(doctorView(a.Translator, report))
}

func doctorView(tr *i18n.Translator, report health.Report) view {
	rows := make([][]string, 0, len(report.Order))
	for _, name := range report.Order {
		r := report.Checks[name]
		rows = append(rows, []string{
			name,
			strings.ToUpper(r.Status.String()),
			r.Message,
			r.Latency.Round(time.Millisecond).String(),
		})
	}
	return view{
		data: report,
		table: ux.Table{
			Title:   "Overall: " + strings.ToUpper(report.Status.String()),
			Headers: []string{"CHECK", "STATUS", "MESSAGE", "LATENCY"},
			Rows:    rows,
			Empty:   tr.T(i18n.NoData),
		},
	}
}

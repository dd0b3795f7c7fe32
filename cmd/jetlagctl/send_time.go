package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-jetlag/internal/service/sendtime"
	"github.com/KasumiMercury/primind-jetlag/internal/tz"
)

func newSendTimeCmd() *cobra.Command {
	var departure, originTZ, first string

	cmd := &cobra.Command{
		Use:   "send-time",
		Short: "Show when the flight-day email for a departure would be sent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSendTime(cmd.OutOrStdout(), departure, originTZ, first)
		},
	}
	cmd.Flags().StringVarP(&departure, "departure", "d", "", "Departure wall clock in the origin zone, e.g. 2026-01-20T11:00 (required)")
	cmd.Flags().StringVarP(&originTZ, "origin-tz", "z", "", "IANA origin timezone (required)")
	cmd.Flags().StringVarP(&first, "first", "f", "", "First intervention of the departure day as HH:MM")
	_ = cmd.MarkFlagRequired("departure")
	_ = cmd.MarkFlagRequired("origin-tz")

	return cmd
}

func runSendTime(w io.Writer, departure, originTZ, first string) error {
	result, err := sendtime.Calculate(departure, originTZ, first)
	if err != nil {
		return err
	}

	loc, err := tz.LoadLocation(originTZ)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "send_at_utc:   %s\n", result.SendAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "send_at_local: %s\n", result.SendAt.In(loc).Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(w, "night_before:  %t\n", result.IsNightBefore)

	return nil
}

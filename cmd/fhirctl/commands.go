package main

import (
	"fmt"
	"io"
	"neohearts-service/internal/app/drivers/logger"
	"neohearts-service/internal/pkg/screening"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	var log *logrus.Logger

	rootCmd := &cobra.Command{
		Use:           "fhirctl",
		Short:         "Convert newborn screening records to and from FHIR bundles offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.NewLogrusLogger(cmd.ErrOrStderr(), verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	logFor := func() *logrus.Logger { return log }
	rootCmd.AddCommand(buildCmd(logFor))
	rootCmd.AddCommand(mapCmd(logFor))
	rootCmd.AddCommand(codesCmd(logFor))
	return rootCmd
}

func buildCmd(logFor func() *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "build [record.json]",
		Short: "Build a transaction bundle from a flat record",
		Long:  "Build a transaction bundle from a flat record. The record is read from the file argument, or stdin when it is omitted or \"-\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logFor()
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			record := new(screening.Record)
			if err := json.Unmarshal(raw, record); err != nil {
				log.WithError(err).Error("record is not valid JSON")
				return fmt.Errorf("decoding record: %w", err)
			}

			bundle, err := screening.Build(record)
			if err != nil {
				log.WithError(err).Error("building bundle failed")
				return err
			}
			log.WithField("entries", len(bundle.Entry)).Debug("bundle built")
			return writeJSON(cmd.OutOrStdout(), bundle)
		},
	}
}

func mapCmd(logFor func() *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "map [bundle.json]",
		Short: "Map a stored bundle back to a flat record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logFor()
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			record, err := screening.MapJSON(raw)
			if err != nil {
				log.WithError(err).Error("mapping bundle failed")
				return err
			}
			log.WithField("patient_id", record.ID).Debug("bundle mapped")
			return writeJSON(cmd.OutOrStdout(), record)
		},
	}
}

func codesCmd(logFor func() *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "Print the coding table and check it for collisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logFor()
			if err := screening.DefaultTable.Validate(); err != nil {
				log.WithError(err).Error("coding table is invalid")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tSYSTEM\tCODE\tLABEL\tSHAPE")
			count := 0
			for _, entry := range screening.DefaultTable.Entries() {
				printEntry(w, entry, "")
				count++
				for _, component := range entry.Components {
					printEntry(w, component, "  ")
					count++
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			log.WithField("entries", count).Debug("coding table is valid")
			return nil
		},
	}
}

func printEntry(w io.Writer, entry *screening.CodingEntry, indent string) {
	fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\n", indent, entry.Key, entry.Coding.System, entry.Coding.Code, entry.Label, entry.Shape)
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return raw, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

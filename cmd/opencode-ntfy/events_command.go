package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"opencode-ntfy/internal/config"
	"opencode-ntfy/internal/events"
)

type eventRow struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Notifies    bool   `json:"notifies"`
	Default     bool   `json:"default"`
}

func newEventsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "events",
		Short:       "List the lifecycle events the host runtime emits",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := eventRows()
			if asJSON {
				return writeJSON(cmd, rows)
			}
			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				table = append(table, []string{row.Type, yesNo(row.Notifies), yesNo(row.Default), row.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Event", "Notifies", "Default", "Description"}, table))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func eventRows() []eventRow {
	defaults := map[string]bool{}
	for _, name := range config.DefaultEvents() {
		defaults[name] = true
	}
	catalogue := events.Catalogue()
	rows := make([]eventRow, 0, len(catalogue))
	for _, d := range catalogue {
		rows = append(rows, eventRow{
			Type:        string(d.Type),
			Description: d.Description,
			Notifies:    d.Notifies,
			Default:     defaults[string(d.Type)],
		})
	}
	return rows
}

// unmappedEvents returns the known event names in names that pass the filter
// but never produce a notification.
func unmappedEvents(names []string) []string {
	var out []string
	for _, name := range names {
		t := events.Type(name)
		if events.Known(t) && !events.Notifies(t) {
			out = append(out, name)
		}
	}
	return out
}

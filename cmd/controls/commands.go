package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/requiem/controls"
	"github.com/milk9111/requiem/keys"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"
)

type app struct {
	file     string
	logLevel string

	// clipboardWrite is swapped out in tests.
	clipboardWrite func(data []byte) error
}

func newRootCmd() *cobra.Command {
	return (&app{clipboardWrite: writeClipboard}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "controls",
		Short: "Inspect and edit key bindings",
		Long: `controls reads and writes the JSON file the game loads its key
bindings from. Edits are saved immediately; a running game with
watch_controls enabled picks them up on the next frame.

Examples:
  controls show
  controls rebind sprint K_LSHIFT K_SPACE
  controls use arrows
  controls export --copy`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.file, "file", controls.DefaultPath, "Path to the controls file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		a.showCmd(),
		a.rebindCmd(),
		a.resetCmd(),
		a.keysCmd(),
		a.useCmd(),
		a.exportCmd(),
	)
	return root
}

// open loads the controls file, creating it with defaults when missing.
func (a *app) open(cmd *cobra.Command) (*controls.Store, error) {
	lvl, err := log.ParseLevel(a.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", a.logLevel)
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "controls", Level: lvl})
	store := controls.NewStore(a.file, logger)
	store.Load()
	return store, nil
}

func (a *app) showCmd() *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the bindings of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			name := store.ProfileName()
			if profile != "" {
				name = profile
			}
			bindings, ok := store.Document().Profiles[name]
			if !ok {
				return fmt.Errorf("unknown profile %q (have %s)", name, strings.Join(store.Profiles(), ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderBindings(name, name == store.ProfileName(), bindings))
			return nil
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "Profile to show (default: active)")
	return cmd
}

func (a *app) rebindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebind <action> <key>...",
		Short: "Bind keys to an action and save",
		Long: `Replace the keys bound to an action in the active profile.
Key names come from 'controls keys'.

Examples:
  controls rebind move_left K_LEFT K_a
  controls rebind pause K_ESCAPE K_p`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			action := controls.Action(args[0])
			known := append(controls.DefaultActions(), store.Actions()...)
			if !slices.Contains(known, action) {
				return fmt.Errorf("unknown action %q", action)
			}
			for _, name := range args[1:] {
				if _, ok := keys.Lookup(name); !ok {
					return fmt.Errorf("unknown key name %q (see 'controls keys')", name)
				}
			}
			store.Rebind(action, args[1:])
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", action, strings.Join(store.KeyNames(action), ", "))
			return nil
		},
	}
}

func (a *app) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default bindings and save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			store.ResetDefaults()
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %s bindings in %s\n", store.ProfileName(), store.Path())
			return nil
		},
	}
}

func (a *app) keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List every key name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range keys.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (a *app) useCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <profile>",
		Short: "Switch the active profile and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			if err := store.SwitchProfile(args[0]); err != nil {
				return err
			}
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "active profile: %s\n", store.ProfileName())
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var copyOut bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the controls file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(store.Document(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal controls: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			if copyOut {
				if err := a.clipboardWrite(data); err != nil {
					log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "controls"}).Warn("could not copy to clipboard", "error", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the document to the clipboard")
	return cmd
}

func writeClipboard(data []byte) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// sortedActions orders the default actions first, then any extra ones.
func sortedActions(bindings map[string][]string) []string {
	rank := make(map[string]int)
	for i, a := range controls.DefaultActions() {
		rank[string(a)] = i
	}
	out := make([]string, 0, len(bindings))
	for a := range bindings {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iok := rank[out[i]]
		rj, jok := rank[out[j]]
		if iok != jok {
			return iok
		}
		if iok && ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

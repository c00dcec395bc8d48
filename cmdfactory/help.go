// SPDX-License-Identifier: MIT
// Copyright (c) 2019 GitHub Inc.
// Copyright (c) 2022 Unikraft GmbH.
package cmdfactory

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/muesli/reflow/indent"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/set"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

const (
	// AnnotationHelpGroup names the command group, as registered with
	// cobra.Command.AddGroup on the parent, a command is listed under.
	AnnotationHelpGroup = "help:group"

	// AnnotationHelpHidden keeps a command out of every help listing.
	AnnotationHelpHidden = "help:hidden"

	// AnnotationEnv is set on flags which can also be sourced from an
	// environment variable.
	AnnotationEnv = "help:env"
)

// usageWidth is the column at which flag usages are wrapped in the short
// usage message.
const usageWidth = 80

var failed atomic.Bool

// HasFailed reports whether a help request ended in an error that was already
// reported to the user, such as a mistyped subcommand.
func HasFailed() bool {
	return failed.Load()
}

type helpSection struct {
	title string
	body  string
}

func usageFunc(cmd *cobra.Command) error {
	cmd.Printf("Usage:  %s", cmd.UseLine())

	if names := visibleNames(cmd); len(names) > 0 {
		cmd.Print("\n\nAvailable commands:\n")
		for _, name := range names {
			cmd.Printf("  %s\n", name)
		}
		return nil
	}

	if usages := cmd.LocalFlags().FlagUsagesWrapped(usageWidth); usages != "" {
		cmd.Println("\n\nFlags:")
		cmd.Print(indent.String(dedent(usages), 2))
	}

	return nil
}

func flagErrorFunc(_ *cobra.Command, err error) error {
	if err == pflag.ErrHelp {
		return err
	}
	return FlagErrorWrap(err)
}

// helpFunc renders the help of cmd. Group commands reach it with the raw
// arguments when they are invoked without a known subcommand, in which case
// the first unknown argument is reported along with close matches.
func helpFunc(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	out := iostreams.G(ctx).Out

	if cmd.HasParent() && !cmd.Parent().HasParent() && len(args) >= 2 &&
		!set.NewStringSet(args...).ContainsAnyOf("--help", "-h") {
		suggest(iostreams.G(ctx).ErrOut, cmd, args[1])
		failed.Store(true)
		return
	}

	cs := iostreams.G(ctx).ColorScheme()

	for _, s := range helpSections(cmd) {
		if s.body == "" {
			continue
		}

		if s.title != "" {
			fmt.Fprintln(out, cs.Bold(s.title))
			fmt.Fprintln(out, indent.String(strings.Trim(s.body, "\r\n"), 2))
		} else {
			fmt.Fprintln(out, s.body)
		}

		fmt.Fprintln(out)
	}
}

func suggest(out io.Writer, cmd *cobra.Command, arg string) {
	fmt.Fprintf(out, "unknown command %q for %q\n", arg, cmd.CommandPath())

	candidates := []string{"--help"}
	if arg != "help" {
		if cmd.SuggestionsMinimumDistance <= 0 {
			cmd.SuggestionsMinimumDistance = 2
		}
		candidates = cmd.SuggestionsFor(arg)
	}

	if len(candidates) > 0 {
		fmt.Fprint(out, "\nDid you mean this?\n")
		for _, c := range candidates {
			fmt.Fprintf(out, "\t%s\n", c)
		}
	}

	fmt.Fprintf(out, "\nRun '%s --help' for usage.\n", cmd.CommandPath())
}

func helpSections(cmd *cobra.Command) []helpSection {
	long := cmd.Long
	if long == "" {
		long = cmd.Short
	}

	sections := []helpSection{
		{"", long},
		{"USAGE", cmd.UseLine()},
		{"ALIASES", strings.Join(cmd.Aliases, " ")},
	}

	sections = append(sections, commandSections(cmd)...)
	sections = append(sections,
		helpSection{"FLAGS", dedent(cmd.LocalFlags().FlagUsages())},
		helpSection{"INHERITED FLAGS", dedent(cmd.InheritedFlags().FlagUsages())},
	)

	if !cmd.HasParent() {
		sections = append(sections, helpSection{"ENVIRONMENT", environment(cmd.PersistentFlags())})
	}

	return append(sections, helpSection{"EXAMPLES", cmd.Example})
}

// commandSections lists the subcommands of cmd. Descendants annotated with
// one of the groups registered on cmd are listed under that group's title
// by their path relative to cmd, everything else under SUBCOMMANDS.
func commandSections(cmd *cobra.Command) []helpSection {
	groups := set.NewStringSet()
	for _, g := range cmd.Groups() {
		groups.Add(g.ID)
	}

	grouped := map[string][]*cobra.Command{}
	var ungrouped []*cobra.Command

	for _, c := range descendants(cmd) {
		if !listed(c) {
			continue
		}

		if g, ok := c.Annotations[AnnotationHelpGroup]; ok && groups.Contains(g) {
			grouped[g] = append(grouped[g], c)
		} else if c.Parent() == cmd {
			ungrouped = append(ungrouped, c)
		}
	}

	width := 0
	for _, cmds := range append([][]*cobra.Command{ungrouped}, mapValues(grouped)...) {
		for _, c := range cmds {
			width = max(width, len(relativeName(cmd, c)))
		}
	}

	render := func(cmds []*cobra.Command) string {
		lines := make([]string, 0, len(cmds))
		for _, c := range cmds {
			lines = append(lines, fmt.Sprintf("%-*s  %s", width, relativeName(cmd, c), c.Short))
		}
		return strings.Join(lines, "\n")
	}

	sections := []helpSection{{"SUBCOMMANDS", render(ungrouped)}}
	for _, g := range cmd.Groups() {
		sections = append(sections, helpSection{g.Title, render(grouped[g.ID])})
	}

	return sections
}

// environment lists the environment variables backing flags.
func environment(flags *pflag.FlagSet) string {
	var lines []string
	width := 0

	flags.VisitAll(func(f *pflag.Flag) {
		if env, ok := f.Annotations[AnnotationEnv]; ok && len(env) > 0 {
			width = max(width, len(env[0]))
		}
	})

	flags.VisitAll(func(f *pflag.Flag) {
		if env, ok := f.Annotations[AnnotationEnv]; ok && len(env) > 0 {
			lines = append(lines, fmt.Sprintf("%-*s  --%s", width, env[0], f.Name))
		}
	})

	sort.Strings(lines)

	return strings.Join(lines, "\n")
}

func listed(c *cobra.Command) bool {
	_, hidden := c.Annotations[AnnotationHelpHidden]
	return c.Short != "" && !hidden
}

func visibleNames(cmd *cobra.Command) []string {
	var names []string
	for _, c := range cmd.Commands() {
		if _, hidden := c.Annotations[AnnotationHelpHidden]; !hidden {
			names = append(names, c.Name())
		}
	}
	return names
}

func descendants(cmd *cobra.Command) []*cobra.Command {
	var all []*cobra.Command
	for _, c := range cmd.Commands() {
		all = append(all, c)
		all = append(all, descendants(c)...)
	}
	return all
}

// relativeName is the space separated path from parent down to cmd.
func relativeName(parent, cmd *cobra.Command) string {
	parts := []string{cmd.Name()}
	for cmd.HasParent() && cmd.Parent() != parent {
		cmd = cmd.Parent()
		parts = append([]string{cmd.Name()}, parts...)
	}
	return strings.Join(parts, " ")
}

func mapValues(m map[string][]*cobra.Command) [][]*cobra.Command {
	values := make([][]*cobra.Command, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	return values
}

// dedent strips the indentation shared by every non-empty line of s.
func dedent(s string) string {
	lines := strings.Split(s, "\n")

	shared := -1
	for _, l := range lines {
		if l == "" {
			continue
		}
		if n := len(l) - len(strings.TrimLeft(l, " ")); shared == -1 || n < shared {
			shared = n
		}
	}

	if shared <= 0 {
		return s
	}

	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, strings.Repeat(" ", shared))
	}

	return strings.Join(lines, "\n")
}

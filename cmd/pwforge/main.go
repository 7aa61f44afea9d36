package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/pwforge/cmd/analyze"
	"github.com/gigurra/pwforge/cmd/casevar"
	"github.com/gigurra/pwforge/cmd/config"
	"github.com/gigurra/pwforge/cmd/generate"
	"github.com/gigurra/pwforge/cmd/leet"
	"github.com/gigurra/pwforge/cmd/years"
	"github.com/spf13/cobra"
)

// Command group IDs
const (
	groupWordlists = "wordlists"
	groupAnalysis  = "analysis"
	groupSettings  = "settings"
)

// withGroup sets the GroupID on a command and returns it
func withGroup(cmd *cobra.Command, group string) *cobra.Command {
	cmd.GroupID = group
	return cmd
}

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "pwforge",
		Short:   "Targeted password wordlists and strength analysis",
		Version: appVersion(),
		Groups: []*cobra.Group{
			{ID: groupWordlists, Title: "Wordlists:"},
			{ID: groupAnalysis, Title: "Analysis:"},
			{ID: groupSettings, Title: "Settings:"},
		},
		SubCmds: []*cobra.Command{
			withGroup(generate.Cmd(), groupWordlists),
			withGroup(leet.Cmd(), groupWordlists),
			withGroup(casevar.Cmd(), groupWordlists),
			withGroup(years.Cmd(), groupWordlists),

			withGroup(analyze.Cmd(), groupAnalysis),

			withGroup(config.Cmd(), groupSettings),
		},
	}.Run()
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}

package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/pwforge/cmd/common"
	"github.com/gigurra/pwforge/cmd/common/config"
	"github.com/gigurra/pwforge/cmd/common/logging"
	"github.com/gigurra/pwforge/cmd/common/prompt"
	"github.com/gigurra/pwforge/cmd/common/scoring"
	"github.com/gigurra/pwforge/cmd/common/wordgen"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.1password.io/spg"
)

// Swappable for tests.
var (
	clipboardWriteAll = clipboard.WriteAll
	loadConfig        = config.Load
	newScorer         = func() scoring.Scorer { return scoring.NewZxcvbn() }
	suggestPassword   = generateSuggestion
)

type Params struct {
	Password string   `pos:"true" optional:"true" help:"Password to analyze. Prompted without echo when omitted."`
	Context  []string `short:"c" optional:"true" help:"Context words (names, pets, dates...) that an attacker would try first. Can be repeated or comma-separated."`
	Profile  bool     `short:"P" optional:"true" help:"Also use the saved profile as context." default:"false"`
	Suggest  bool     `short:"s" optional:"true" help:"Suggest a strong random password." default:"false"`
	Length   int      `short:"l" optional:"true" help:"Length of the suggested password." default:"20"`
	Copy     bool     `optional:"true" help:"Copy the suggested password to the clipboard (implies --suggest)." default:"false"`
	JSON     bool     `short:"j" optional:"true" help:"Print the result as JSON." default:"false"`
	Verbose  bool     `short:"v" optional:"true" help:"Verbose logging." default:"false"`
}

// Report is the JSON form of an analysis.
type Report struct {
	scoring.Result
	Label      string `json:"label"`
	Suggestion string `json:"suggestion,omitempty"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "analyze",
		Short: "Estimate the strength of a password",
		Long: `Estimate how hard a password is to guess.

The score ranges from 0 (Very Weak) to 4 (Strong). Estimated crack times are
shown for four attack scenarios, from a throttled online attack to an offline
attack against a fast hash. Context words (names, pets, dates) are treated as
known to the attacker.

Examples:
  pwforge analyze                               # prompts without echo
  pwforge analyze 'Sam2024!' -c sam -c rex
  pwforge analyze --profile --suggest --copy`,
		ParamEnrich: common.DefaultParamEnricher(),
		InitFunc: func(params *Params, cmd *cobra.Command) error {
			cmd.Aliases = []string{"a", "score"}
			return nil
		},
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := Run(params, os.Stdin, os.Stdout, os.Stderr)
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func Run(params *Params, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := run(params, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "pwforge analyze: %v\n", err)
		return 1
	}
	return 0
}

func run(params *Params, stdin io.Reader, stdout, stderr io.Writer) error {
	level := "warn"
	if params.Verbose {
		level = "debug"
	}
	log := logging.New(logging.Config{Level: level, Out: stderr})

	userInputs := wordgen.CollectTokens(params.Context...)
	if params.Profile {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		userInputs = append(userInputs, cfg.Profile.Tokens()...)
		log.Debug().Int("tokens", len(userInputs)).Msg("using saved profile as context")
	}

	password := params.Password
	if password == "" {
		var err error
		password, err = prompt.ReadSecret(stdin, stderr, "Password: ")
		if err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	res := newScorer().Score(password, userInputs)
	if res.Degraded {
		log.Warn().Msg("scoring backend failed, reporting a degraded result")
	}

	report := Report{Result: res, Label: scoring.Label(res.Score)}
	if params.Suggest || params.Copy {
		suggestion, err := suggestPassword(params.Length)
		if err != nil {
			return fmt.Errorf("failed to generate suggestion: %w", err)
		}
		report.Suggestion = suggestion
	}
	if params.Copy {
		if err := clipboardWriteAll(report.Suggestion); err != nil {
			return fmt.Errorf("failed to write to clipboard: %w", err)
		}
	}

	if params.JSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	Render(stdout, res)
	if report.Suggestion != "" {
		fmt.Fprintf(stdout, "\nSuggested password: %s\n", report.Suggestion)
		if params.Copy {
			fmt.Fprintln(stdout, "(copied to clipboard)")
		}
	}
	return nil
}

var labelColors = []lipgloss.Color{"196", "208", "220", "112", "40"}

// Render prints a human readable analysis: score, crack times and feedback.
func Render(w io.Writer, res scoring.Result) {
	label := lipgloss.NewStyle().Bold(true).
		Foreground(labelColors[max(0, min(res.Score, len(labelColors)-1))]).
		Render(scoring.Label(res.Score))
	fmt.Fprintf(w, "Score (0=weak .. 4=strong): %d %s\n", res.Score, label)

	if len(res.CrackTimes) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Scenario", "Estimated crack time"})
		for _, scenario := range scoring.Scenarios {
			if display, ok := res.CrackTimes[scenario]; ok {
				t.AppendRow(table.Row{scenario, display})
			}
		}
		t.Render()
	}

	if res.Feedback.Warning != "" {
		fmt.Fprintf(w, "Warning: %s\n", res.Feedback.Warning)
	}
	for _, s := range res.Feedback.Suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

func generateSuggestion(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	r := spg.NewCharRecipe(length)
	r.Allow = spg.Letters | spg.Digits | spg.Symbols
	r.Require = spg.Letters | spg.Digits | spg.Symbols

	pwd, err := r.Generate()
	if err != nil {
		return "", err
	}
	return pwd.String(), nil
}

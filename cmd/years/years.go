package years

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/pwforge/cmd/common"
	"github.com/gigurra/pwforge/cmd/common/wordgen"
	"github.com/spf13/cobra"
)

type Params struct {
	Years []string `pos:"true" help:"Years: a range ('1990 2025') or a list ('2018,2019' or '2018 2019 2020')."`
	JSON  bool     `short:"j" optional:"true" help:"Print the years as a JSON array." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "years",
		Short: "Expand a year range or list",
		Long: `Expand year hints the way the wordlist generator does.

Exactly two years more than one apart describe an inclusive range, in either
order. Anything else is used as a list. A single non-numeric value makes the
whole expansion empty.

Examples:
  pwforge years 1990 2000
  pwforge years 2018,2019
  pwforge years -j 2025 2020`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := Run(params, os.Stdout, os.Stderr)
			os.Exit(exitCode)
		},
	}.ToCobra()
}

var errNoYears = errors.New("no valid years (every value must be an integer)")

func Run(params *Params, stdout, stderr io.Writer) int {
	years := wordgen.ExpandYears(wordgen.SplitYears(strings.Join(params.Years, " ")))
	if len(years) == 0 {
		fmt.Fprintf(stderr, "pwforge years: %v\n", errNoYears)
		return 1
	}

	if params.JSON {
		data, err := json.Marshal(years)
		if err != nil {
			fmt.Fprintf(stderr, "pwforge years: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
		return 0
	}

	for _, y := range years {
		fmt.Fprintln(stdout, y)
	}
	return 0
}

package casevar

import (
	"bufio"
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
	Words []string `pos:"true" optional:"true" help:"Words to vary. If none provided, reads one word per line from stdin."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "case",
		Short: "List case variants of words",
		Long: `List the case variants the wordlist generator would try for each word:
as typed, lowercase, UPPERCASE and Capitalized.

Examples:
  pwforge case samJones
  cat names.txt | pwforge case`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := Run(params, os.Stdin, os.Stdout, os.Stderr)
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func Run(params *Params, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(params.Words) > 0 {
		for _, word := range params.Words {
			printVariants(stdout, word)
		}
		return 0
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			printVariants(stdout, word)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "pwforge case: error reading: %v\n", err)
		return 1
	}
	return 0
}

func printVariants(w io.Writer, word string) {
	for _, v := range wordgen.CaseVariants(word) {
		fmt.Fprintln(w, v)
	}
}

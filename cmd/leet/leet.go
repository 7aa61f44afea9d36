package leet

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
	Words  []string `pos:"true" optional:"true" help:"Words to expand. If none provided, reads one word per line from stdin."`
	Max    int      `short:"m" help:"Maximum variants per word." default:"40"`
	Header bool     `short:"H" optional:"true" help:"Print a '# word' header before the variants of each word." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "leet",
		Short: "List l33t variants of words",
		Long: `List the leet variants the wordlist generator would try for each word:
every single and every pair of substitutable letters replaced, plus one
variant with every substitutable letter replaced. Output is sorted.

Substitutions: a->4, e->3, i->1, o->0, s->5, t->7, l->1.

Examples:
  pwforge leet password
  pwforge leet -m 5 sam rex
  cat names.txt | pwforge leet -H`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := Run(params, os.Stdin, os.Stdout, os.Stderr)
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func Run(params *Params, stdin io.Reader, stdout, stderr io.Writer) int {
	emit := func(word string) {
		if params.Header {
			fmt.Fprintf(stdout, "# %s\n", word)
		}
		for _, v := range wordgen.LeetVariants(word, params.Max) {
			fmt.Fprintln(stdout, v)
		}
	}

	if len(params.Words) > 0 {
		for _, word := range params.Words {
			emit(word)
		}
		return 0
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			emit(word)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "pwforge leet: error reading: %v\n", err)
		return 1
	}
	return 0
}

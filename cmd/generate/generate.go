package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/dustin/go-humanize"
	"github.com/gigurra/pwforge/cmd/analyze"
	"github.com/gigurra/pwforge/cmd/common"
	"github.com/gigurra/pwforge/cmd/common/config"
	"github.com/gigurra/pwforge/cmd/common/logging"
	"github.com/gigurra/pwforge/cmd/common/prompt"
	"github.com/gigurra/pwforge/cmd/common/scoring"
	"github.com/gigurra/pwforge/cmd/common/sink"
	"github.com/gigurra/pwforge/cmd/common/wordgen"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Swappable for tests.
var (
	loadConfig      = config.Load
	saveConfig      = config.Save
	stdinIsTerminal = prompt.IsTerminal
	newScorer       = func() scoring.Scorer { return scoring.NewZxcvbn() }
)

// ErrNoInputs is returned when there is nothing to build a wordlist from.
var ErrNoInputs = errors.New("no inputs provided, rerun with --name/--pet/--favorite/--dob/--extra or --interactive")

type Params struct {
	Name          []string `short:"n" optional:"true" help:"Name(s). Can be repeated or comma-separated."`
	Pet           []string `short:"t" optional:"true" help:"Pet name(s)."`
	Favorite      []string `short:"f" optional:"true" help:"Favorite things."`
	Dob           []string `short:"d" optional:"true" help:"Dates of birth or other dates (YYYYMMDD or YYYY)."`
	Extra         []string `short:"e" optional:"true" help:"Extra words."`
	Years         []string `short:"y" optional:"true" help:"Years to append: a range ('1990 2025') or a list ('2018,2019')."`
	Out           string   `short:"o" optional:"true" help:"Output file, - for stdout (default from config: wordlist.txt)."`
	Gzip          bool     `short:"z" optional:"true" help:"Compress output as .gz." default:"false"`
	Compression   string   `short:"c" optional:"true" help:"Compression: none, gz, zst, xz, lz4, bz2, br (default from config)."`
	Password      string   `short:"p" optional:"true" help:"Password to analyze before generating, using the inputs as context."`
	Encrypt       bool     `short:"E" optional:"true" help:"Encrypt the wordlist with a passphrase (age format)." default:"false"`
	Passphrase    string   `optional:"true" help:"Encryption passphrase (implies --encrypt, prompted if omitted)."`
	MaxWords      int      `short:"m" optional:"true" help:"Maximum number of words to write (default from config: 20000)."`
	AddReversed   bool     `short:"r" optional:"true" help:"Add reversed variants." default:"false"`
	AddRepeats    bool     `short:"R" optional:"true" help:"Add repeated variants (e.g. name+name)." default:"false"`
	GenerateOnly  bool     `short:"g" optional:"true" help:"Skip password analysis." default:"false"`
	Interactive   bool     `short:"i" optional:"true" help:"Ask for inputs interactively." default:"false"`
	NoTokenizer   bool     `optional:"true" help:"Disable the word segmentation pass." default:"false"`
	Profile       bool     `short:"P" optional:"true" help:"Start from the inputs saved in the profile." default:"false"`
	Save          bool     `short:"s" optional:"true" help:"Save this session's inputs to the profile." default:"false"`
	MaxCandidates int      `optional:"true" help:"Stop collecting candidates at this many before sorting (0 = unbounded)."`
	Verbose       bool     `short:"v" optional:"true" help:"Verbose output with generation statistics." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "generate",
		Short: "Generate a custom password wordlist",
		Long: `Generate a wordlist of likely passwords from personal details.

Inputs are combined in every order (up to three at a time) and decorated with
case changes, leet substitutions, common prefixes and suffixes, and years.
The result is sorted, deduplicated and capped at --max-words.

Unset options fall back to ~/.pwforge/config.yaml and PWFORGE_* variables.

Examples:
  pwforge generate -n Sam -n Jones --pet rex -y 1990 -y 2025
  pwforge generate -n sam,alex --dob 19900412 -o words.txt --gzip
  pwforge generate -i --save
  pwforge generate --profile -z -o - | zcat | head`,
		ParamEnrich: common.DefaultParamEnricher(),
		InitFunc: func(params *Params, cmd *cobra.Command) error {
			cmd.Aliases = []string{"gen", "g"}
			return nil
		},
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			exitCode := RunContext(ctx, params, os.Stdin, os.Stdout, os.Stderr)
			stop()
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func Run(params *Params, stdin io.Reader, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), params, stdin, stdout, stderr)
}

// RunContext generates and saves a wordlist. Cancelling ctx abandons the
// generation and writes nothing.
func RunContext(ctx context.Context, params *Params, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := run(ctx, params, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "pwforge generate: %v\n", err)
		if errors.Is(err, context.Canceled) {
			return 130
		}
		return 1
	}
	return 0
}

// settings are the params merged with the config.
type settings struct {
	out         string
	compression string
	passphrase  string
	workFactor  int
	opts        wordgen.Options
	tokenizer   wordgen.Tokenizer
}

func resolve(params *Params, cfg *config.Config) settings {
	s := settings{
		out:         lo.Ternary(params.Out != "", params.Out, cfg.Output.Path),
		compression: lo.Ternary(params.Compression != "", params.Compression, cfg.Output.Compression),
		passphrase:  params.Passphrase,
		workFactor:  cfg.Output.WorkFactor,
		opts: wordgen.Options{
			MaxWords:      lo.Ternary(params.MaxWords > 0, params.MaxWords, cfg.Generator.MaxWords),
			AddReversed:   params.AddReversed || cfg.Generator.AddReversed,
			AddRepeats:    params.AddRepeats || cfg.Generator.AddRepeats,
			MaxCandidates: lo.Ternary(params.MaxCandidates > 0, params.MaxCandidates, cfg.Generator.MaxCandidates),
		},
		tokenizer: wordgen.SegmentTokenizer{},
	}
	if params.Gzip && params.Compression == "" {
		s.compression = "gz"
	}
	if params.NoTokenizer || strings.EqualFold(cfg.Generator.Tokenizer, config.TokenizerNone) {
		s.tokenizer = wordgen.NoTokenizer{}
	}
	return s
}

func run(ctx context.Context, params *Params, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if params.Verbose {
		level = "debug"
	}
	log := logging.New(logging.Config{Level: level, Pretty: cfg.Log.Pretty, Out: stderr})

	s := resolve(params, cfg)
	if _, err := sink.Compression(s.compression); err != nil {
		return err
	}

	// Human readable output moves to stderr when the wordlist goes to stdout.
	info := stdout
	if s.out == sink.Stdout {
		info = stderr
	}

	session := config.Profile{
		Names:     params.Name,
		Pets:      params.Pet,
		Favorites: params.Favorite,
		Dates:     params.Dob,
		Extra:     params.Extra,
		Years:     params.Years,
	}
	tokens := session.Tokens()
	years := parseYears(params.Years)

	if params.Profile {
		tokens = append(cfg.Profile.Tokens(), tokens...)
		if len(params.Years) == 0 {
			years = parseYears(cfg.Profile.Years)
		}
		log.Debug().Strs("tokens", tokens).Msg("loaded saved profile")
	}

	// One prompter for all of stdin, its buffer may hold later answers.
	p := prompt.New(stdin, stderr)
	if params.Interactive || (len(tokens) == 0 && stdinIsTerminal(stdin)) {
		collected, err := prompt.Collect(p, tokens)
		if err != nil {
			return err
		}
		tokens = collected.Tokens
		if len(collected.Years) > 0 {
			years = collected.Years
			session.Years = collected.Answers.Years
		}
		session = mergeProfiles(session, collected.Answers)
	}

	if params.Save {
		cfg.Profile = session
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		log.Debug().Msg("saved inputs to profile")
	}

	if params.Password != "" && !params.GenerateOnly {
		fmt.Fprintln(info, strings.Repeat("=", 60))
		fmt.Fprintln(info, "Password analysis")
		res := newScorer().Score(params.Password, tokens)
		if res.Degraded {
			log.Warn().Msg("scoring backend failed, reporting a degraded result")
		}
		analyze.Render(info, res)
		fmt.Fprintln(info, strings.Repeat("=", 60))
	}

	if len(tokens) == 0 {
		return ErrNoInputs
	}

	if params.Encrypt && s.passphrase == "" {
		s.passphrase, err = readPassphrase(p)
		if err != nil {
			return err
		}
	}

	log.Debug().
		Int("tokens", len(tokens)).
		Ints("years", years).
		Int("max_words", s.opts.MaxWords).
		Bool("reversed", s.opts.AddReversed).
		Bool("repeats", s.opts.AddRepeats).
		Msg("generating wordlist")

	start := time.Now()
	res, err := expand(ctx, wordgen.NewEngine(wordgen.DefaultRules(), wordgen.WithTokenizer(s.tokenizer)), tokens, years, s.opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	if res.Capped {
		log.Warn().Int("max_candidates", s.opts.MaxCandidates).Msg("candidate cap reached, output may not be the smallest words overall")
	}

	path, err := sink.Write(res.Words, s.out, sink.Options{
		Compression: s.compression,
		Passphrase:  s.passphrase,
		WorkFactor:  s.workFactor,
		Stdout:      stdout,
	})
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Str("compression", s.compression).Bool("encrypted", s.passphrase != "").Msg("wordlist written")

	fmt.Fprintf(info, "Saved %d words to: %s\n", len(res.Words), path)
	if params.Verbose {
		printStats(info, tokens, years, res, path, elapsed)
	}
	return nil
}

// expand runs the engine on a background goroutine so an interrupt does not
// have to wait for a large expansion.
func expand(ctx context.Context, engine *wordgen.Engine, tokens []string, years []int, opts wordgen.Options) (wordgen.Result, error) {
	if err := ctx.Err(); err != nil {
		return wordgen.Result{}, fmt.Errorf("generation interrupted, nothing written: %w", err)
	}
	done := make(chan wordgen.Result, 1)
	go func() {
		done <- engine.Expand(tokens, years, opts)
	}()

	select {
	case <-ctx.Done():
		return wordgen.Result{}, fmt.Errorf("generation interrupted, nothing written: %w", ctx.Err())
	case res := <-done:
		return res, nil
	}
}

func parseYears(raw []string) []int {
	if len(raw) == 0 {
		return nil
	}
	return wordgen.ExpandYears(wordgen.SplitYears(strings.Join(raw, " ")))
}

func mergeProfiles(a, b config.Profile) config.Profile {
	return config.Profile{
		Names:     slices.Concat(a.Names, b.Names),
		Pets:      slices.Concat(a.Pets, b.Pets),
		Favorites: slices.Concat(a.Favorites, b.Favorites),
		Dates:     slices.Concat(a.Dates, b.Dates),
		Extra:     slices.Concat(a.Extra, b.Extra),
		Years:     a.Years,
	}
}

func readPassphrase(p *prompt.Prompter) (string, error) {
	passphrase, err := p.Secret("Passphrase: ")
	if err != nil {
		return "", err
	}
	if passphrase == "" {
		return "", errors.New("passphrase cannot be empty")
	}
	if p.IsTerminal() {
		confirm, err := p.Secret("Confirm passphrase: ")
		if err != nil {
			return "", err
		}
		if confirm != passphrase {
			return "", errors.New("passphrases do not match")
		}
	}
	return passphrase, nil
}

func printStats(w io.Writer, tokens []string, years []int, res wordgen.Result, path string, elapsed time.Duration) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Statistic", "Value"})
	t.AppendRow(table.Row{"Input tokens", len(tokens)})
	t.AppendRow(table.Row{"Years", len(years)})
	t.AppendRow(table.Row{"Candidates", humanize.Comma(int64(res.Candidates))})
	t.AppendRow(table.Row{"Written", humanize.Comma(int64(len(res.Words)))})
	t.AppendRow(table.Row{"Capped", res.Capped})
	if path != sink.Stdout {
		if info, err := os.Stat(path); err == nil {
			t.AppendRow(table.Row{"File size", humanize.Bytes(uint64(info.Size()))})
		}
	}
	t.AppendRow(table.Row{"Elapsed", elapsed.Round(time.Millisecond)})
	t.Render()
}

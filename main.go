// phonekit: international phone number input with country masks and a picker.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/minios-linux/phonekit/config"
	"github.com/minios-linux/phonekit/country"
	"github.com/minios-linux/phonekit/i18n"
	"github.com/minios-linux/phonekit/logger"
	"github.com/minios-linux/phonekit/phoneinput"
	"github.com/minios-linux/phonekit/picker"
	"github.com/spf13/cobra"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir     string
	flagLang    string
	flagCountry string
	flagMask    string
	flagLevel   string
)

// cfg is loaded once per invocation in the root PersistentPreRunE.
var cfg *config.File

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "phonekit",
		Short: "International phone number input with country masks",
		Long: `phonekit: international phone number input.

Applies a country-specific digit mask as you type and offers a searchable
country picker with dial codes and flags.

Commands:
  format      Format one input against the selected country's mask
  countries   List or search the country catalog
  session     Interactive phone input session on stdin
  version     Show version information

Configuration is read from .phonekit.yaml and settings.env in --root,
then from PHONEKIT_* environment variables. Flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
	}

	// Global persistent flags, inherited by all subcommands
	pf := root.PersistentFlags()
	pf.StringVar(&rootDir, "root", ".", "Directory with .phonekit.yaml and settings.env")
	pf.StringVar(&flagLang, "lang", "", "Display language: en, ru, lt, tr")
	pf.StringVar(&flagCountry, "country", "", "Default country ISO code")
	pf.StringVar(&flagMask, "mask", "", "Mask override, '9' marks a digit")
	pf.StringVar(&flagLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newFormatCmd(),
		newCountriesCmd(),
		newSessionCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and initializes logging
// and translations.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		loaded.Lang = flagLang
	}
	if flags.Changed("country") {
		loaded.DefaultCountry = strings.ToUpper(flagCountry)
	}
	if flags.Changed("mask") {
		loaded.Mask = flagMask
	}
	if flags.Changed("log-level") {
		loaded.Log.Level = flagLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	if err := logger.Setup(loaded.Log.Level, loaded.Log.File, loaded.Rotation()); err != nil {
		return err
	}
	i18n.Init(loaded.Lang)

	cfg = loaded
	return nil
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "phonekit version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// format (one keystroke string -> PhoneInputState JSON)
// ---------------------------------------------------------------------------

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [input...]",
		Short: "Format one input against the selected country's mask",
		Long: `Format raw input for the default country (or --country) and print the
resulting state as JSON. Arguments are joined with spaces; only digits matter.

Example:
  phonekit format --country US 555 123 4567`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := country.Default()
			if err != nil {
				return err
			}
			ctrl, err := phoneinput.New(catalog, cfg.Options())
			if err != nil {
				return err
			}
			st := ctrl.Type(strings.Join(args, " "))
			return writeState(cmd.OutOrStdout(), st, true)
		},
	}

	return cmd
}

func writeState(w io.Writer, st phoneinput.State, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(st)
}

// ---------------------------------------------------------------------------
// countries (catalog listing and search)
// ---------------------------------------------------------------------------

func newCountriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries [term]",
		Short: "List or search the country catalog",
		Long: `List the country catalog in picker order. With a term, only countries whose
name (in --lang) contains the term, or whose dial code contains it, are shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := country.Default()
			if err != nil {
				return err
			}
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			fmt.Fprint(cmd.OutOrStdout(), picker.Table(catalog.Filter(term, cfg.Lang), cfg.Lang))
			return nil
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// session (line-driven host for the input controller)
// ---------------------------------------------------------------------------

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Interactive phone input session on stdin",
		Long: `Run a phone input session. Each line is the full text of the phone field
and is formatted as typed; every change is printed as one JSON line.

Lines starting with '/' are picker commands:
  /open            Show the country picker
  /close           Hide the picker without selecting
  /search <term>   Filter the picker list (empty term shows all)
  /pick <n>        Select the n-th country of the picker list
  /select <code>   Select a country by ISO code
  /quit            End the session`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := country.Default()
			if err != nil {
				return err
			}
			return runSession(cmd.InOrStdin(), cmd.OutOrStdout(), catalog, cfg.Options())
		},
	}

	return cmd
}

func runSession(in io.Reader, out io.Writer, catalog *country.Catalog, opts phoneinput.Options) error {
	p := picker.NewTerminal(out, opts.Lang)
	opts.Picker = p
	opts.OnChange = func(st phoneinput.State) {
		if err := writeState(out, st, false); err != nil {
			logError("%v", err)
		}
		if st.IsVerified {
			logSuccess("%s %s", st.DialCode, st.PhoneNumber)
		}
	}

	ctrl, err := phoneinput.New(catalog, opts)
	if err != nil {
		return err
	}

	sel := ctrl.Selected()
	logInfo("%s %s %s  %s", sel.Flag, sel.DisplayName(ctrl.Lang()), sel.DialCode, ctrl.Placeholder())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "/") {
			ctrl.Type(line)
			continue
		}

		command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		switch command {
		case "/quit":
			return nil
		case "/open":
			ctrl.OpenPicker()
			if !ctrl.Visible() {
				logWarning("%s", i18n.T("Country change is disabled"))
			}
		case "/close":
			ctrl.ClosePicker()
		case "/search":
			ctrl.Search(arg)
		case "/pick":
			if !ctrl.Visible() {
				logWarning("%s", i18n.T("Picker is closed, use /open first"))
				continue
			}
			n, err := strconv.Atoi(arg)
			if err != nil {
				logWarning("%s", i18n.Tf("Not a number: %s", arg))
				continue
			}
			if err := p.Choose(n); err != nil {
				logWarning("%v", err)
				continue
			}
			printSelected(out, ctrl)
		case "/select":
			ctrl.SelectCountry(strings.ToUpper(arg))
			if arg != "" {
				printSelected(out, ctrl)
			}
		default:
			logWarning("%s", i18n.Tf("Unknown command: %s", command))
		}
	}
	return scanner.Err()
}

func printSelected(out io.Writer, ctrl *phoneinput.Controller) {
	sel := ctrl.Selected()
	fmt.Fprintln(out, i18n.Tf("Selected country: %s %s (%s)", sel.Flag, sel.DisplayName(ctrl.Lang()), sel.DialCode))
}

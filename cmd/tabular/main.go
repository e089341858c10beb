// Command tabular converts tabular files between CSV dialects and inspects
// their inferred schemas. Compressed inputs are detected automatically;
// compressed outputs follow the file extension.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tabular-dev/tabular/pkg/config"
	"github.com/tabular-dev/tabular/pkg/csv"
	"github.com/tabular-dev/tabular/pkg/logger"
)

var version = "0.1.0"

func main() {
	v := viper.New()
	v.SetEnvPrefix("TABULAR")
	v.AutomaticEnv()

	var configFile string

	root := &cobra.Command{
		Use:   "tabular",
		Short: "Tabular - multi-threaded CSV engine",
		Long: `Tabular reads and writes CSV files using a parallel, type-inferring
columnar engine. It converts between dialects, handles gzip/zstd/lz4/s2
compressed files transparently, and reports inferred schemas.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Path to YAML config file (optional)")
	pf.Int("threads", 0, "Number of parse/serialize tasks (0 = one per CPU)")
	pf.String("delimiter", ",", "Field delimiter (single byte)")
	pf.String("quote", `"`, "Quote character (single byte)")
	pf.StringSlice("na", []string{""}, "Tokens treated as missing values on input")
	pf.Bool("no-header", false, "Treat the first record as data, naming columns C0, C1, ...")
	pf.Bool("fill-missing", false, "Pad short rows with NA instead of failing")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = v.BindPFlags(pf)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tabular v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Read a CSV file and rewrite it with the configured dialect",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configFile, v)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.LoggerConfig()); err != nil {
				return err
			}

			table, err := csv.ReadFile(args[0], cfg.ReadOptions())
			if err != nil {
				return err
			}
			if err := csv.WriteFile(args[1], table, cfg.WriteOptions()); err != nil {
				return err
			}
			logger.Info("conversion complete",
				zap.String("input", args[0]),
				zap.String("output", args[1]),
				zap.Int("rows", table.NumRows()),
				zap.Int("columns", table.NumCols()))
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "schema <input>",
		Short: "Print the inferred schema of a CSV file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configFile, v)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.LoggerConfig()); err != nil {
				return err
			}

			table, err := csv.ReadFile(args[0], cfg.ReadOptions())
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(table.Schema(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig layers settings: defaults, then the config file when given,
// then any flag or TABULAR_* environment value that differs from default.
func resolveConfig(configFile string, v *viper.Viper) (*config.Config, error) {
	cfg := config.New()
	if configFile != "" {
		loaded, err := config.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v.IsSet("threads") && v.GetInt("threads") != 0 {
		cfg.Threads = v.GetInt("threads")
	}
	if s := v.GetString("delimiter"); s != "," || cfg.Delimiter == "" {
		cfg.Delimiter = s
	}
	if s := v.GetString("quote"); s != `"` || cfg.Quote == "" {
		cfg.Quote = s
	}
	if na := v.GetStringSlice("na"); len(na) != 1 || na[0] != "" {
		cfg.NAStrings = na
	}
	if v.GetBool("no-header") {
		cfg.NoHeader = true
	}
	if v.GetBool("fill-missing") {
		cfg.FillMissing = true
	}
	if s := v.GetString("log-level"); s != "info" {
		cfg.Log.Level = s
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

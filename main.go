package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Filtering
	recursive       bool
	excludePatterns string
	maxSizeBytes    int64
	maxDepth        int
	showHidden      bool
	noIgnore        bool

	// Checksums
	withSHA256  bool
	withMD5     bool
	withBLAKE2b bool

	// Output
	outputFile      string
	copyToClipboard bool
	pdfOutputFile   string

	verbose bool

	logger = zerolog.Nop()

	typeOverrides *TypeOverrides
)

// version is the application version, set via ldflags.
var version string = "dev" // Default for local builds

var rootCmd = &cobra.Command{
	Use:   "check [PATHS...]",
	Short: "check reports per-file metadata for files and directory trees.",
	Long: `check inspects local files, directories, and glob patterns and reports
the size, MIME type, and text encoding of every regular file, with optional
SHA256, MD5, and BLAKE2b checksums.`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args)
	},
}

// run expands the input patterns, inspects every match, and emits the report.
func run(args []string) error {
	if len(args) == 0 {
		args = []string{"."} // Default to current directory if no paths provided
	}

	digests := DigestSet{SHA256: withSHA256, MD5: withMD5, BLAKE2b: withBLAKE2b}

	var reports []Report
	var failedPaths int

	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", pattern).Msg("no files match pattern")
			failedPaths++
			continue
		}

		for _, match := range matches {
			found, err := processPath(match, digests, typeOverrides)
			if err != nil {
				logger.Error().Str("path", match).Err(err).Msg("could not process path")
				failedPaths++
				continue
			}
			reports = append(reports, found...)
		}
	}

	return emitReport(renderText(reports, failedPaths))
}

func init() {
	cobra.OnInitialize(initLogging, initConfig, initTypeOverrides)

	// Filtering
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Process directories recursively")
	viper.BindPFlag("recursive", rootCmd.Flags().Lookup("recursive"))
	rootCmd.Flags().StringVarP(&excludePatterns, "exclude", "e", "", "Patterns to exclude (comma-separated, e.g. *.tmp,*.bak)")
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().Int64VarP(&maxSizeBytes, "max-size", "s", 0, "Maximum file size in bytes (0 for no limit)")
	viper.BindPFlag("max_size", rootCmd.Flags().Lookup("max-size"))
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum directory depth to traverse (0 for no limit)")
	viper.BindPFlag("max_depth", rootCmd.Flags().Lookup("max-depth"))
	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "Include hidden files and directories")
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect .gitignore files")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))

	// Checksums
	rootCmd.Flags().BoolVar(&withSHA256, "sha", false, "Show SHA256 checksum")
	viper.BindPFlag("sha", rootCmd.Flags().Lookup("sha"))
	rootCmd.Flags().BoolVar(&withMD5, "md5", false, "Show MD5 checksum")
	viper.BindPFlag("md5", rootCmd.Flags().Lookup("md5"))
	rootCmd.Flags().BoolVar(&withBLAKE2b, "blake2", false, "Show BLAKE2b-256 checksum")
	viper.BindPFlag("blake2", rootCmd.Flags().Lookup("blake2"))

	// Output
	rootCmd.Flags().StringVarP(&outputFile, "file", "f", "", "Save report to specified file")
	viper.BindPFlag("file", rootCmd.Flags().Lookup("file"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy report to clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Save report as PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))

	viper.SetDefault("recursive", false)
	viper.SetDefault("max_size", 0)
	viper.SetDefault("max_depth", 0)
	viper.SetDefault("hidden", false)
	viper.SetDefault("no_ignore", false)
}

// initLogging configures the console logger on stderr. The report itself
// never goes through the logger.
func initLogging() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}
}

// initConfig reads in the config file and CHECK_* environment variables.
func initConfig() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	// Search config in home/.config/check with name "config" (without extension).
	viper.AddConfigPath(filepath.Join(home, ".config", "check"))
	viper.AddConfigPath(".") // Also look in current directory
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug().Str("path", viper.ConfigFileUsed()).Msg("using config file")
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		logger.Warn().Err(err).Msg("error reading config file")
	}

	// Config and env values reach unchanged flags through viper.
	if !rootCmd.Flags().Changed("exclude") {
		excludePatterns = viper.GetString("exclude")
	}
	if !rootCmd.Flags().Changed("max-size") {
		maxSizeBytes = viper.GetInt64("max_size")
	}
	if !rootCmd.Flags().Changed("max-depth") {
		maxDepth = viper.GetInt("max_depth")
	}
	if !rootCmd.Flags().Changed("recursive") {
		recursive = viper.GetBool("recursive")
	}
	if !rootCmd.Flags().Changed("hidden") {
		showHidden = viper.GetBool("hidden")
	}
	if !rootCmd.Flags().Changed("no-ignore") {
		noIgnore = viper.GetBool("no_ignore")
	}
	if !verbose && viper.GetBool("verbose") {
		verbose = true
		logger = logger.Level(zerolog.DebugLevel)
	}
}

// initTypeOverrides loads the optional types.yml extension override map.
func initTypeOverrides() {
	var err error
	typeOverrides, err = loadTypeOverrides()
	if err != nil {
		logger.Warn().Err(err).Msg("could not load MIME type overrides")
		typeOverrides = nil // Sniffing alone still works
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

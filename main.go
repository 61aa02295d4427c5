package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Table fields
	listMode     bool
	showType     bool
	showGraphic  bool
	showLength   bool
	showFullPath bool

	// Layout
	columnSize int
	nameWidth  int
	noColor    bool
	humanSizes bool

	// Extension sets
	strongExts []string
	onlyExts   []string

	// Filtering
	respectGitignore bool

	// Output
	copyToClipboard bool
	pdfOutputFile   string

	// Interactive Mode
	interactiveMode bool

	cfgFile string

	extTable *ExtensionTable
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "fs [directoryPath]",
	Short: "fs lists a directory as a name grid or an annotated table.",
	Long: `fs lists the entries of a directory. Without field options the names are
printed in columns; with --list, --type, --graphic, --length or --fullpath
a table is printed with file types, image dimensions and sizes.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		cfg, err := buildRenderConfig(viper.GetViper(), strongExts, onlyExts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if interactiveMode {
			picked, err := runInteractiveFinder(dir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Interactive mode error: %v\n", err)
				os.Exit(1)
			}
			if picked == "" {
				// User aborted the selection
				os.Exit(0)
			}
			dir = picked
		}

		result, err := scanDirectory(dir, ScanOptions{Only: cfg.Only, RespectGitignore: viper.GetBool("gitignore")})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, w := range result.Warnings {
			warnf("%v", w)
		}

		fields := Fields{
			List:     listMode,
			Type:     showType,
			Graphic:  showGraphic,
			Length:   showLength,
			FullPath: showFullPath,
		}
		warn := func(err error) { warnf("%v", err) }

		out := color.Output
		layout := NewLayout(cfg, fields, extTable, newPainter(cfg, os.Stdout), warn)
		fmt.Fprint(out, layout.Render(result.Entries))

		// Exports never carry colour codes.
		if copyToClipboard || pdfOutputFile != "" {
			plain := NewLayout(cfg, fields, extTable, plainPainter{}, nil)
			if copyToClipboard {
				if err := clipboard.WriteAll(plain.Render(result.Entries)); err != nil {
					fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
				} else {
					fmt.Fprintln(os.Stderr, "Listing copied to clipboard.")
				}
			}
			if pdfOutputFile != "" {
				if err := generatePDF(plain, dir, result.Entries, pdfOutputFile); err != nil {
					fmt.Fprintf(os.Stderr, "Error generating PDF: %v\n", err)
				}
			}
		}
	},
}

func init() {
	// Preferences first, then the config file, then type definitions
	cobra.OnInitialize(initPreferences, initConfig, initTypes)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/fs/config.toml)")

	// Table fields
	rootCmd.Flags().BoolVarP(&listMode, "list", "l", false, "View in list format")
	rootCmd.Flags().BoolVarP(&showType, "type", "t", false, "View file type")
	rootCmd.Flags().BoolVarP(&showGraphic, "graphic", "g", false, "View image file width and height")
	rootCmd.Flags().BoolVarP(&showLength, "length", "L", false, "View file or folder size")
	rootCmd.Flags().BoolVarP(&showFullPath, "fullpath", "f", false, "View full path")

	// Layout
	rootCmd.Flags().IntVarP(&columnSize, "column", "c", 4, "Set column size")
	viper.BindPFlag("column_size", rootCmd.Flags().Lookup("column"))
	rootCmd.Flags().IntVar(&nameWidth, "name-width", 24, "Minimum width of the filename field")
	viper.BindPFlag("filename_max", rootCmd.Flags().Lookup("name-width"))
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored names")
	viper.BindPFlag("no_color", rootCmd.Flags().Lookup("no-color"))
	rootCmd.Flags().BoolVar(&humanSizes, "human", false, "Show sizes in human readable units")
	viper.BindPFlag("human", rootCmd.Flags().Lookup("human"))

	// Extension sets
	rootCmd.Flags().StringSliceVarP(&strongExts, "strong", "s", nil, "Highlight files with specified extensions (dir and nope select directories and extensionless files)")
	rootCmd.Flags().StringSliceVarP(&onlyExts, "only", "o", nil, "Show only files with specified extensions")

	// Filtering
	rootCmd.Flags().BoolVar(&respectGitignore, "gitignore", false, "Hide entries matched by the directory's .gitignore")
	viper.BindPFlag("gitignore", rootCmd.Flags().Lookup("gitignore"))

	// Output
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "C", false, "Copy the listing to the clipboard")
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Save the listing as PDF")

	// Interactive Mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick the directory to list with a fuzzy finder")

	setViperDefaults(viper.GetViper())
}

// setViperDefaults installs the built-in settings; .fsrc may replace them.
func setViperDefaults(v *viper.Viper) {
	d := defaultRenderConfig()
	v.SetDefault("filename_max", d.FilenameMax)
	v.SetDefault("column_size", d.ColumnSize)
	v.SetDefault("use_color", d.UseColor)
	v.SetDefault("dir_color", "GREEN")
	v.SetDefault("link_color", "BLUE")
	v.SetDefault("no_color", false)
	v.SetDefault("human", false)
	v.SetDefault("gitignore", false)
}

// initPreferences applies ~/.fsrc on top of the built-in defaults.
func initPreferences() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	if err := loadFsrc(viper.GetViper(), home); err != nil {
		warnf("%v", err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(configDir(home))
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("FS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match FS_*

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			warnf("error reading config file: %v", err)
		}
	}
}

// initTypes loads the extension tables, extended by types.yml when present.
func initTypes() {
	extTable = defaultExtensionTable()
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	if err := loadExtensionOverrides(extTable, configDir(home)); err != nil {
		warnf("%v", err)
		fmt.Fprintln(os.Stderr, "Proceeding with the built-in file types.")
		extTable = defaultExtensionTable()
	}
}

func configDir(home string) string {
	return filepath.Join(home, ".config", "fs")
}

// buildRenderConfig freezes the merged settings into a RenderConfig.
func buildRenderConfig(v *viper.Viper, strong, only []string) (RenderConfig, error) {
	cfg := RenderConfig{
		FilenameMax: v.GetInt("filename_max"),
		ColumnSize:  v.GetInt("column_size"),
		UseColor:    v.GetBool("use_color") && !v.GetBool("no_color"),
		Highlight:   newExtSet(strong),
		Only:        newExtSet(only),
		Human:       v.GetBool("human"),
	}
	if cfg.ColumnSize < 1 {
		return cfg, fmt.Errorf("column size must be at least 1, got %d", cfg.ColumnSize)
	}
	if cfg.FilenameMax < 1 {
		return cfg, fmt.Errorf("filename width must be at least 1, got %d", cfg.FilenameMax)
	}

	var err error
	if cfg.DirColor, err = parseColorName(v.GetString("dir_color")); err != nil {
		return cfg, fmt.Errorf("dir_color: %w", err)
	}
	if cfg.LinkColor, err = parseColorName(v.GetString("link_color")); err != nil {
		return cfg, fmt.Errorf("link_color: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

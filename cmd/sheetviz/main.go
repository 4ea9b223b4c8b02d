// Package main provides the CLI entry point for sheetviz-go.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/export"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/output"
	"golang.org/x/term"
)

var (
	apiURL     string
	token      string
	verbose    bool
	pretty     bool
	sheetName  string
	chartType  string
	xAxis      string
	yAxis      string
	title      string
	outputPath string
	format     string
	width      int
	height     int
	rows       int
	email      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetviz",
		Short: "Chart spreadsheet data",
		Long: `sheetviz-go loads CSV and Excel files, projects columns into chart views,
and renders or exports the result.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&apiURL, "api", os.Getenv("SHEETVIZ_API"), "Backend base URL (env SHEETVIZ_API)")
	pf.StringVar(&token, "token", os.Getenv("SHEETVIZ_TOKEN"), "Bearer token (env SHEETVIZ_TOKEN)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&pretty, "pretty", term.IsTerminal(int(os.Stdout.Fd())), "Pretty-print JSON output")
	pf.StringVar(&sheetName, "sheet", "", "Worksheet to read (default: first sheet)")

	rootCmd.AddCommand(
		previewCmd(),
		projectCmd(),
		insightsCmd(),
		renderCmd(),
		exportCmd(),
		loginCmd(),
		listCmd(),
		deleteCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	logrus.SetOutput(os.Stderr)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
	return nil
}

// newSession returns a session bound to the backend.
func newSession() *sheetviz.Session {
	opts := sheetviz.DefaultOptions()
	opts.APIBaseURL = apiURL
	opts.Token = token
	opts.Logger = logrus.StandardLogger()
	opts.Parser.Sheet = sheetName
	return sheetviz.NewSession(opts)
}

// localSession returns a session that never contacts the backend, for
// commands that only read a file.
func localSession() *sheetviz.Session {
	opts := sheetviz.DefaultOptions()
	opts.Logger = logrus.StandardLogger()
	opts.Parser.Sheet = sheetName
	return sheetviz.NewSession(opts)
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&chartType, "type", string(models.ChartBar), "Chart type: bar, line, pie, scatter, 3d-column")
	cmd.Flags().StringVarP(&xAxis, "x", "x", "", "X axis column header")
	cmd.Flags().StringVarP(&yAxis, "y", "y", "", "Y axis column header")
	cmd.Flags().StringVar(&title, "title", models.DefaultChartTitle, "Chart title")
}

// loadChart uploads the file and binds the chart flags to it.
func loadChart(ctx context.Context, path string) (*sheetviz.Session, error) {
	t, err := models.ParseChartType(chartType)
	if err != nil {
		return nil, err
	}

	s := localSession()
	if _, err := s.Upload(ctx, path); err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	s.UpdateConfig(models.ConfigPatch{Type: &t, XAxis: &xAxis, YAxis: &yAxis, Title: &title})
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Show headers, leading rows and statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := localSession()
			ds, err := s.Upload(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}
			return writeJSON(output.NewPreview(ds, rowsLimit(), true))
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", models.DefaultPreviewRows, "Number of rows to show")
	return cmd
}

func rowsLimit() int {
	if rows < 0 {
		return models.DefaultPreviewRows
	}
	return rows
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [file]",
		Short: "Print the chart view as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadChart(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view, _ := s.View()
			data, err := output.ViewToJSON(&view, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(data)
		},
	}
	addChartFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights [file]",
		Short: "Print observations about the chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadChart(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := output.InsightsToJSON(s.Insights(), pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(data)
		},
	}
	addChartFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the chart to PNG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if f != export.FormatPNG && f != export.FormatPDF {
				return fmt.Errorf("invalid chart format: %s (must be png or pdf)", format)
			}
			s, err := loadChart(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			path := outputPath
			if path == "" {
				path = export.Filename(title, f)
			}
			return writeFile(path, func(w *bufio.Writer) error {
				_, err := s.ExportChart(w, f, export.RenderOptions{Width: width, Height: height})
				return err
			})
		},
	}
	addChartFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: derived from title)")
	cmd.Flags().StringVar(&format, "format", string(export.FormatPNG), "Output format: png, pdf")
	cmd.Flags().IntVar(&width, "width", export.DefaultWidth, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", export.DefaultHeight, "Image height in pixels")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Convert the dataset to Parquet or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			s := localSession()
			ds, err := s.Upload(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}

			path := outputPath
			if path == "" {
				path = export.Filename(strings.TrimSuffix(ds.Name(), filepath.Ext(ds.Name())), f)
			}
			return writeFile(path, func(w *bufio.Writer) error {
				_, err := s.ExportDataset(w, f)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: derived from input)")
	cmd.Flags().StringVar(&format, "format", string(export.FormatParquet), "Output format: parquet, csv")
	return cmd
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword()
			if err != nil {
				return err
			}

			no := false
			opts := sheetviz.DefaultOptions()
			opts.APIBaseURL = apiURL
			opts.Logger = logrus.StandardLogger()
			opts.SyncOnLogin = &no
			s := sheetviz.NewSession(opts)

			user, err := s.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Logged in as %s <%s>\n", user.Name, user.Email)
			fmt.Println(s.Token())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.MarkFlagRequired("email")
	return cmd
}

// readPassword reads SHEETVIZ_PASSWORD, a hidden prompt on a terminal, or
// one line of stdin.
func readPassword() (string, error) {
	if pw := os.Getenv("SHEETVIZ_PASSWORD"); pw != "" {
		return pw, nil
	}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(pw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List datasets stored on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession()
			if err := s.Sync(cmd.Context()); err != nil {
				return fmt.Errorf("list failed: %w", err)
			}
			summaries := []output.DatasetSummary{}
			for _, ds := range s.Datasets() {
				summaries = append(summaries, output.Summarize(ds, false))
			}
			return writeJSON(summaries)
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a dataset stored on the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession()
			if err := s.Sync(cmd.Context()); err != nil {
				return fmt.Errorf("list failed: %w", err)
			}
			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete failed: %w", err)
			}
			return nil
		},
	}
}

func writeJSON(v interface{}) error {
	data, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(data)
}

func writeOutput(data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(data))
	return nil
}

func writeFile(path string, fn func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		os.Remove(path)
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintln(os.Stderr, path)
	return nil
}

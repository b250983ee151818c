package main

import (
	"os"

	"github.com/jengzang/bikeshare-go/internal/app"
	"github.com/jengzang/bikeshare-go/internal/config"
	"github.com/jengzang/bikeshare-go/pkg/response"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath string
	dataDir    string
	logLevel   string
	logFormat  string
	pageSize   int
}

func newRootCmd() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "bikeshare",
		Short: "Explore US bikeshare trip data",
		Long: `An interactive tool for exploring bikeshare trips in Chicago, New York
and Washington. It asks for a city, month and day, then prints the most
frequent travel times, popular stations, trip durations and user statistics,
and can page through the raw trips.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 加载配置
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}

			// 命令行参数优先
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = f.dataDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = f.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = f.logFormat
			}
			if cmd.Flags().Changed("page-size") {
				cfg.PageSize = f.pageSize
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// 启动交互会话
			a := app.NewApp(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			return a.Run(cmd.Context())
		},
	}

	rootCmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to a YAML config file (default $BIKESHARE_CONFIG)")
	rootCmd.Flags().StringVar(&f.dataDir, "data-dir", "", "directory holding the city CSV files")
	rootCmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	rootCmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows shown per page of raw trip data")

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		response.Error(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

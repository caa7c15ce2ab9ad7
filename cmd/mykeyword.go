package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/esummer9/mykeyword/common/log"
	"github.com/esummer9/mykeyword/server"
	_profile "github.com/esummer9/mykeyword/server/profile"
)

const (
	greetingBanner = `
█▀▄▀█ █▄█ █▄▀ █▀▀ █▄█ █ █ █ █▀█ █▀█ █▀▄
█ ▀ █  █  █ █ ██▄  █  ▀▄▀▄▀ █▄█ █▀▄ █▄▀
`
)

var (
	profile *_profile.Profile
	mode    string
	addr    string
	port    int
	data    string

	rootCmd = &cobra.Command{
		Use:   "mykeyword",
		Short: `A self-hosted memo service that extracts Korean keywords from what you jot down.`,
		Run: func(_cmd *cobra.Command, _args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			s, err := server.NewServer(ctx, profile)
			if err != nil {
				cancel()
				log.Error("failed to create server", zap.Error(err))
				return
			}

			c := make(chan os.Signal, 1)
			// Trigger graceful shutdown on SIGINT or SIGTERM.
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			go func() {
				sig := <-c
				log.Info(fmt.Sprintf("%s received.", sig.String()))
				s.Shutdown(ctx)
				cancel()
			}()

			println(greetingBanner)
			fmt.Printf("Version %s has been started on port %d\n", profile.Version, profile.Port)

			if err := s.Start(ctx); err != nil {
				if err != http.ErrServerClosed {
					log.Error("failed to start server", zap.Error(err))
					cancel()
				}
			}

			// Wait for CTRL-C.
			<-ctx.Done()
		},
	}
)

func Execute() error {
	defer log.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&mode, "mode", "m", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().StringVarP(&addr, "addr", "a", "", "address of server")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 8081, "port of server")
	rootCmd.PersistentFlags().StringVarP(&data, "data", "d", "", "data directory")
	rootCmd.PersistentFlags().String("timezone", "Local", "timezone of registration dates, e.g. Asia/Seoul")
	rootCmd.PersistentFlags().String("user-dict", "", "user dictionary file, defaults to <data>/komoran/user.dict")
	rootCmd.PersistentFlags().String("reprocess-spec", "@every 10m", "cron spec of the raw memo reprocessing job, empty disables it")
	rootCmd.PersistentFlags().String("s3-endpoint", "", "endpoint of an S3 compatible storage for exports")
	rootCmd.PersistentFlags().String("s3-region", "", "region of the export bucket")
	rootCmd.PersistentFlags().String("s3-bucket", "", "bucket receiving exports")
	rootCmd.PersistentFlags().String("s3-access-key", "", "access key of the export bucket")
	rootCmd.PersistentFlags().String("s3-secret-key", "", "secret key of the export bucket")

	for _, name := range []string{
		"mode", "addr", "port", "data", "timezone", "user-dict", "reprocess-spec",
		"s3-endpoint", "s3-region", "s3-bucket", "s3-access-key", "s3-secret-key",
	} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetDefault("mode", "demo")
	viper.SetDefault("port", 8081)
	viper.SetDefault("reprocess-spec", "@every 10m")
	viper.SetEnvPrefix("mykeyword")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

func initConfig() {
	// A missing .env file is fine.
	_ = godotenv.Load()
	viper.AutomaticEnv()

	var err error
	profile, err = _profile.GetProfile()
	if err != nil {
		fmt.Printf("failed to get profile, error: %+v\n", err)
		os.Exit(1)
	}
	if profile.Mode == "prod" {
		log.EnableProduction()
	}

	log.Debug("server profile",
		zap.String("dsn", profile.DSN),
		zap.String("addr", profile.Addr),
		zap.Int("port", profile.Port),
		zap.String("mode", profile.Mode),
		zap.String("userDict", profile.UserDict),
		zap.String("version", profile.Version),
	)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"maize_maturity"
	"maize_maturity/internal/client"
	"maize_maturity/internal/logger"
	"maize_maturity/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envServerURL   = "server_url"
	envHistoryFile = "history_file"
	envTimeout     = "timeout"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	v   *viper.Viper
	log *logger.Logger
}

func rootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("maize")
	a.v.AutomaticEnv()
	a.v.SetDefault(envServerURL, client.DefaultBaseURL)
	a.v.SetDefault(envHistoryFile, client.DefaultHistoryFile)
	a.v.SetDefault(envTimeout, 10*time.Second)

	var logLevel string
	cmd := &cobra.Command{
		Use:          "maize-client",
		Short:        "Client for the maize maturity prediction service",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logger.Get(logLevel)
		},
	}
	cmd.PersistentFlags().String("server", "", "Service base URL (env MAIZE_SERVER_URL)")
	cmd.PersistentFlags().String("history-file", "", "History CSV path (env MAIZE_HISTORY_FILE)")
	cmd.PersistentFlags().Duration("timeout", 0, "Request timeout, e.g. 5s (env MAIZE_TIMEOUT)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logger.WarnLevel, "Log level (debug, info, warn, error)")
	_ = a.v.BindPFlag(envServerURL, cmd.PersistentFlags().Lookup("server"))
	_ = a.v.BindPFlag(envHistoryFile, cmd.PersistentFlags().Lookup("history-file"))
	_ = a.v.BindPFlag(envTimeout, cmd.PersistentFlags().Lookup("timeout"))

	cmd.AddCommand(a.predictCmd(), a.historyCmd(), a.healthCmd())
	return cmd
}

// client applies the timeout both to the whole call and to the wait for response headers.
func (a *app) client() *client.Client {
	timeout := a.v.GetDuration(envTimeout)
	return client.New(
		client.WithBaseURL(a.v.GetString(envServerURL)),
		client.WithTimeout(timeout),
		client.WithResponseHeaderTimeout(timeout),
	)
}

func (a *app) predictCmd() *cobra.Command {
	var (
		r, g, b   int
		temp, hum float64
		imagePath string
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify one sample and store the result in the history",
		Long: `Sends one sample to POST /predict. The colour comes from --r/--g/--b or,
with --image, from the mean colour of a JPEG or PNG picture of the kernel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkRange("temperature", temp, 20, 35); err != nil {
				return err
			}
			if err := checkRange("humidity", hum, 30, 80); err != nil {
				return err
			}
			if imagePath != "" {
				img, err := client.LoadImage(imagePath)
				if err != nil {
					return err
				}
				rgb := client.AverageRGB(img)
				r, g, b = rgb.R, rgb.G, rgb.B
				fmt.Fprintf(cmd.OutOrStdout(), "Extracted RGB -> R: %d, G: %d, B: %d\n", r, g, b)
			}
			for _, c := range []struct {
				name string
				v    int
			}{{"r", r}, {"g", g}, {"b", b}} {
				if err := checkRange(c.name, float64(c.v), 0, 255); err != nil {
					return err
				}
			}

			history, err := client.OpenHistory(a.v.GetString(envHistoryFile))
			if err != nil {
				return err
			}

			req := maize_maturity.PredictRequest{
				R: float64(r), G: float64(g), B: float64(b),
				Temperature: temp, Humidity: hum,
			}
			start := time.Now()
			resp, err := a.client().Predict(cmd.Context(), req)
			if err != nil {
				a.log.Debugw("predict_failed", "err", err, "elapsed", time.Since(start))
				return err
			}
			a.log.Debugw("predict_ok", "prediction", resp.Prediction, "elapsed", time.Since(start))
			fmt.Fprintf(cmd.OutOrStdout(), "Prediction: %s\n", resp.Prediction)

			entry := models.HistoryEntry{
				R: req.R, G: req.G, B: req.B,
				Temp: temp, Humidity: hum,
				Prediction: resp.Prediction,
			}
			if err := history.Append(entry); err != nil {
				return fmt.Errorf("prediction not saved: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&r, "r", 100, "Red channel (0-255)")
	cmd.Flags().IntVar(&g, "g", 100, "Green channel (0-255)")
	cmd.Flags().IntVar(&b, "b", 100, "Blue channel (0-255)")
	cmd.Flags().Float64Var(&temp, "temperature", 25, "Temperature in °C (20-35)")
	cmd.Flags().Float64Var(&hum, "humidity", 50, "Relative humidity in % (30-80)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Derive R, G, B from a JPEG or PNG image")
	cmd.MarkFlagsMutuallyExclusive("image", "r")
	cmd.MarkFlagsMutuallyExclusive("image", "g")
	cmd.MarkFlagsMutuallyExclusive("image", "b")
	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past predictions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := client.OpenHistory(a.v.GetString(envHistoryFile))
			if err != nil {
				return err
			}
			entries := history.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No predictions yet.")
				return nil
			}
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				fmt.Fprintf(cmd.OutOrStdout(), "#%d RGB: (%g, %g, %g) Temp: %g°C Humidity: %g%% Result: %s\n",
					len(entries)-i, e.R, e.G, e.B, e.Temp, e.Humidity, e.Prediction)
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the history as CSV (use - for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := client.OpenHistory(a.v.GetString(envHistoryFile))
			if err != nil {
				return err
			}
			if args[0] == "-" {
				return history.Export(cmd.OutOrStdout())
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := history.Export(f); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	})
	return cmd
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Print the service health report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.v.GetDuration(envTimeout))
			defer cancel()
			h, err := a.client().Health(ctx)
			if err != nil {
				return err
			}
			out, _ := json.MarshalIndent(h, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func checkRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("--%s must be between %g and %g", name, lo, hi)
	}
	return nil
}

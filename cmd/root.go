/*
Copyright © 2022 Daniils Petrovs <thedanpetrov@gmail.com>

*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DaniruKun/face-anonymizer/imgproc"
	"github.com/DaniruKun/face-anonymizer/internal/log"
	"github.com/DaniruKun/face-anonymizer/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var config = imgproc.DefaultConfig()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "face-anonymizer",
	Short: "Face Anonymizer",
	Long: `Shows the webcam feed with every detected face blurred.

Press 'q' in the window to quit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if config.Debug {
			level = "debug"
		}
		log.Init(level)
		logger := log.With("session", uuid.NewString())

		if err := resolveCascade(&config); err != nil {
			return err
		}

		return imgproc.Start(cmd.Context(), config, imgproc.DefaultDevices(), logger)
	},
}

// resolveCascade fills in the stock frontal face model when no cascade was given.
func resolveCascade(c *imgproc.Config) error {
	if c.CascadePath != "" {
		return nil
	}
	path, err := utils.GetCascadePath(utils.FrontalFaceCascade)
	if err != nil {
		return fmt.Errorf("%w: %v", imgproc.ErrDetectorLoad, err)
	}
	c.CascadePath = path
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Ctrl+C and SIGTERM end the capture loop instead of killing the process
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Errors are reported here only, cobra's own printing is silenced
		log.Error("face anonymizer stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntVarP(&config.DeviceID, "device", "d", config.DeviceID, "Camera device index")
	rootCmd.Flags().StringVarP(&config.CascadePath, "cascade", "c", "", "Haar cascade XML (default: "+utils.FrontalFaceCascade+" from the OpenCV data directories)")
	rootCmd.Flags().DurationVar(&config.ReadTimeout, "read-timeout", config.ReadTimeout, "How long frame reads may keep failing before giving up on the camera, 0 retries forever")
	rootCmd.Flags().BoolVar(&config.Debug, "debug", false, "Enable debug logging")
}

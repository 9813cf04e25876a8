package main

import (
	"github.com/spf13/cobra"

	"movex/internal/config"
	"movex/internal/plan"
)

// registerOptionFlags adds the conversion option flags shared by the root
// and batch commands.
func registerOptionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("quality", 0, "Image quality, 1-100 (ImageMagick)")
	cmd.Flags().String("video-bitrate", "", "Video bitrate, e.g. 2500k (ffmpeg)")
	cmd.Flags().String("audio-bitrate", "", "Audio bitrate, e.g. 192k (ffmpeg)")
	cmd.Flags().String("preset", "", "Encoder preset, ultrafast..veryslow (ffmpeg)")
	cmd.Flags().String("video-codec", "", "Video codec, e.g. libx265 (ffmpeg)")
	cmd.Flags().String("audio-codec", "", "Audio codec, e.g. libopus (ffmpeg)")
	cmd.Flags().Bool("stream-copy", false, "Force ffmpeg stream copy")
	cmd.Flags().Bool("transcode", false, "Force ffmpeg transcode")
	cmd.MarkFlagsMutuallyExclusive("stream-copy", "transcode")
}

// resolveOptions layers command-line flags over the config file: config
// supplies defaults, explicit flags win.
func resolveOptions(cmd *cobra.Command) (plan.Options, error) {
	var opts plan.Options
	fromConfig, err := config.LoadOptions(configPath, profileName)
	if err != nil {
		return plan.Options{}, err
	}
	if fromConfig != nil {
		opts = *fromConfig
	}

	if cmd.Flags().Changed("quality") {
		q, _ := cmd.Flags().GetInt("quality")
		opts.ImageQuality = &q
	}
	if v, _ := cmd.Flags().GetString("video-bitrate"); v != "" {
		opts.VideoBitrate = v
	}
	if v, _ := cmd.Flags().GetString("audio-bitrate"); v != "" {
		opts.AudioBitrate = v
	}
	if v, _ := cmd.Flags().GetString("preset"); v != "" {
		opts.Preset = v
	}
	if v, _ := cmd.Flags().GetString("video-codec"); v != "" {
		opts.VideoCodec = v
	}
	if v, _ := cmd.Flags().GetString("audio-codec"); v != "" {
		opts.AudioCodec = v
	}

	streamCopy, _ := cmd.Flags().GetBool("stream-copy")
	transcode, _ := cmd.Flags().GetBool("transcode")
	switch {
	case streamCopy:
		opts.Preference = plan.PreferenceStreamCopy
	case transcode:
		opts.Preference = plan.PreferenceTranscode
	}
	return opts, nil
}

package main

import (
	"github.com/spf13/cobra"

	"textp2srt/internal/config"
	"textp2srt/internal/filter"
)

// filterFlags are the element selection flags shared by the track commands.
type filterFlags struct {
	includeStyled   bool
	noIgnoreEffects bool
	extraIgnore     []string
}

func (f *filterFlags) register(cmd *cobra.Command, withStyled bool) {
	if withStyled {
		cmd.Flags().BoolVar(&f.includeStyled, "include-text-plus", false, "Include Text+ (styled text) clips")
	}
	cmd.Flags().BoolVar(&f.noIgnoreEffects, "no-ignore-effects", false, "Do not filter transition/effect clips")
	cmd.Flags().StringArrayVar(&f.extraIgnore, "extra-ignore", nil, "Additional ignore substrings (repeatable)")
}

// options merges the flags over the [filter] config section.
func (f *filterFlags) options(cfg *config.Config) filter.Options {
	opts := filter.DefaultOptions()
	opts.ExcludeStyled = !(f.includeStyled || cfg.Filter.IncludeStyled)
	opts.IgnoreEffects = cfg.Filter.IgnoreEffects && !f.noIgnoreEffects
	opts.ExtraPatterns = append(append([]string(nil), cfg.Filter.ExtraIgnore...), f.extraIgnore...)
	if cfg.Filter.MaxEffectSeconds > 0 {
		opts.MaxEffectSeconds = cfg.Filter.MaxEffectSeconds
	}
	if cfg.Filter.MinDistinctRunes > 0 {
		opts.MinDistinctRunes = cfg.Filter.MinDistinctRunes
	}
	return opts
}

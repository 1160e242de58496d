package cmd

import (
	"fmt"

	"github.com/masklab/snowmask/internal/logger"
	"github.com/masklab/snowmask/internal/mask"
)

// RunMask masks a single value and prints the result.
func RunMask(value, category, level string, config *Config) error {
	if category == "" {
		category = config.DefaultCategory
	}
	if level == "" {
		level = config.DefaultLevel
	}

	if _, ok := mask.ParseCategory(category); !ok {
		logger.Warn("Unrecognized category %q, passing value through", category)
	}

	fmt.Println(mask.String(value, category, level))
	return nil
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/plantainpro/internal/config"
	"github.com/iwvelando/plantainpro/internal/dashboard"
	"github.com/iwvelando/plantainpro/internal/metrics"
	"github.com/iwvelando/plantainpro/pkg/constants"
	"github.com/iwvelando/plantainpro/pkg/logging"
	"github.com/iwvelando/plantainpro/pkg/mathutil"
	"github.com/iwvelando/plantainpro/pkg/output"
	"github.com/iwvelando/plantainpro/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	capacity := flag.Float64("capacity", 0, "daily raw plantain capacity override (kg)")
	price := flag.Float64("price", 0, "selling price override (per kg)")
	factor := flag.Float64("factor", 0, "currency depreciation factor override")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfigurationOrDefault(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	model := metrics.NewModel(logging.Named(logger, "metrics"), conf.Assumptions)

	// Only flags given on the command line override the configuration.
	var update metrics.AssumptionUpdate
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capacity":
			update.DailyCapacity = capacity
		case "price":
			update.SellingPrice = price
		case "factor":
			update.CurrencyDepreciationFactor = factor
		}
	})
	for _, v := range []*float64{update.DailyCapacity, update.SellingPrice, update.CurrencyDepreciationFactor} {
		if v != nil && !mathutil.IsFinite(*v) {
			logger.Fatal("assumption overrides must be finite numbers",
				zap.String("op", "main"),
			)
		}
	}
	snapshot := model.Apply(update)

	a := snapshot.Assumptions
	for _, warning := range validation.AssumptionWarnings(a.DailyCapacity, a.SellingPrice, a.CurrencyDepreciationFactor) {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	view := dashboard.Build(snapshot)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, view)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, view)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, view)
	}
	if err != nil {
		logger.Fatal("failed to write report",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}

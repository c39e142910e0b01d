package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/MayEindra/olist-customer-retention/config"
	"github.com/MayEindra/olist-customer-retention/csvload"
	"github.com/MayEindra/olist-customer-retention/render"
	"github.com/MayEindra/olist-customer-retention/view"
)

var fView = flag.String(
	"view",
	"",
	"which view to run: "+strings.Join(view.Names(), ", "),
)

var fData = flag.String(
	"data",
	"",
	"dataset directory, overrides OLIST_DATA_DIR",
)

var fFormat = flag.String(
	"format",
	"",
	"output format, table or csv, overrides OLIST_OUTPUT_FORMAT",
)

var fOutput = flag.String(
	"output",
	"",
	"specify path to save output file, default write to STDOUT",
)

var fDumpPlan = flag.Bool(
	"dump-plan",
	false,
	"print the view's plan instead of running it",
)

func oops(stage string, err error) {
	fmt.Fprintf(os.Stderr, "ERROR [%s]]] %s\n", stage, err)
	os.Exit(-1)
}

func main() {
	godotenv.Load() // a missing .env is fine
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		oops("config", err)
	}
	if lv, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lv)
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	if *fData != "" {
		cfg.DataDir = *fData
	}
	if *fFormat != "" {
		cfg.OutputFormat = *fFormat
	}

	if *fView == "" {
		oops("view", fmt.Errorf("no view specified, pick one of: %s",
			strings.Join(view.Names(), ", ")))
	}

	if *fDumpPlan {
		p, err := view.PlanFor(*fView)
		if err != nil {
			oops("plan", err)
		}
		fmt.Print(p.Print())
		os.Exit(0)
	}

	log := logrus.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"view":   *fView,
	})

	st, report, err := csvload.LoadDir(cfg.DataDir)
	if err != nil {
		oops("load", err)
	}
	log.WithFields(logrus.Fields{
		"orders":   report.Loaded[csvload.FileOrders],
		"rejected": report.Rejected,
	}).Info("dataset loaded")
	for _, sample := range report.Samples {
		log.WithField("record", sample).Warn("rejected record")
	}

	res, err := view.Run(*fView, st)
	if err != nil {
		oops("run", err)
	}
	log.WithFields(logrus.Fields{
		"rows":               len(res.Records),
		"integrity_warnings": res.Stats.IntegrityWarnings,
	}).Info("view computed")
	for _, sample := range res.Stats.WarningSamples {
		log.WithField("record", sample).Warn("integrity warning")
	}

	var out io.Writer = os.Stdout
	if *fOutput != "" {
		f, err := os.Create(*fOutput)
		if err != nil {
			oops("save", err)
		}
		defer f.Close()
		out = f
	}

	switch cfg.OutputFormat {
	case "csv":
		err = render.CSV(out, res.Header, res.Records)
	case "table":
		err = render.Table(out, res.Header, res.Records, nil)
	default:
		err = fmt.Errorf("unknown output format: %s", cfg.OutputFormat)
	}
	if err != nil {
		oops("output", err)
	}
}

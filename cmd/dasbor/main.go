package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	"github.com/rs/xid"

	"dasbor"
	"dasbor/api"
	"dasbor/store/duck"
	"dasbor/util"
)

const (
	cfgFile = "dasbor.yaml"
	logMode = 0644
	cfgMode = 0600
)

func main() {

	path := cfgFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg := &dasbor.Config{}
	created, err := util.LoadConfig(cfg, path, dasbor.Sample, cfgMode)
	if err != nil {
		fmt.Printf("failed to load config: %s\n", err)
		os.Exit(1)
	}
	if created {
		fmt.Printf("wrote sample config to %s, edit base_url and run again\n", path)
		os.Exit(0)
	}
	if cfg.Api == nil {
		fmt.Printf("config %s has no api section\n", path)
		os.Exit(1)
	}

	logFile := util.OpenLog(cfg.LogPath, logMode)
	defer util.CloseLog(logFile)

	lgrCfg := &sabot.Config{MaxLen: cfg.LogMaxLen}
	lgr := lgrCfg.New(logFile)

	ctx := lgr.WithFields(context.Background(), "run_id", xid.New().String())
	lgr.Info(ctx, "starting", "base_url", cfg.Api.BaseUrl, "page_size", cfg.PageSize)

	err = run(ctx, cfg, lgr)
	if err != nil {
		lgr.Error(ctx, "exiting", err)
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	lgr.Info(ctx, "stopped")
}

func run(ctx context.Context, cfg *dasbor.Config, lgr *sabot.Sabot) (err error) {

	var clnt *api.Client
	clnt, err = cfg.Api.New(lgr)
	if err != nil {
		return
	}

	dk, err := duck.New(lgr)
	if err != nil {
		return
	}
	defer dk.Close()

	model, err := cfg.New(ctx, clnt, dk, lgr)
	if err != nil {
		return
	}

	_, err = tea.NewProgram(model).Run()
	return
}

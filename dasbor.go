// Package dasbor is a terminal admin dashboard over the site's REST api.
package dasbor

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"dasbor/api"
	nt "dasbor/entity"
	"dasbor/page"
	"dasbor/variant"
)

// Config is the configurable fields of the dashboard.
type Config struct {
	Api       *api.Config            `yaml:"api"`
	PageSize  int                    `yaml:"page_size"`
	LogPath   string                 `yaml:"log_path"`
	LogMaxLen int                    `yaml:"log_max_len"`
	Layouts   map[string][]nt.Layout `yaml:"layouts,omitempty"`
}

// Sample is written as the config file on first run.
var Sample = []byte(`api:
  base_url: http://localhost:3000
  timeout: 10s
  timezone: Asia/Jakarta
page_size: 5
log_path: dasbor.log
log_max_len: 999
layouts:
  Testimonials:
    - header: Image
      hidden: true
`)

// New creates the dashboard model with a screen per resource.
func (cfg *Config) New(ctx context.Context, clnt page.Client, store page.Activity, lgr nt.Logger) (model Model, err error) {

	loc, err := cfg.Location()
	if err != nil {
		return
	}

	screens := []Screen{}
	add := func(scr Screen, err error) error {
		if err != nil {
			return err
		}
		screens = append(screens, scr)
		return nil
	}

	err = add(page.Testimonials(loc).New(ctx, clnt, lgr, cfg.options("Testimonials")))
	if err != nil {
		return
	}
	err = add(page.ProjectClients(loc).New(ctx, clnt, lgr, cfg.options("Project Clients")))
	if err != nil {
		return
	}

	for _, kind := range []variant.DocKind{variant.Dokumentasi, variant.Development, variant.Security} {
		var res page.Resource[nt.Image]
		res, err = page.Docs(kind, loc)
		if err != nil {
			return
		}
		err = add(res.New(ctx, clnt, lgr, cfg.options(res.Title)))
		if err != nil {
			return
		}
	}

	err = add(page.Footer().New(ctx, clnt, lgr, cfg.options("Footer")))
	if err != nil {
		return
	}
	err = add(page.AboutUs().New(ctx, clnt, lgr, cfg.options("About Us")))
	if err != nil {
		return
	}
	err = add(page.NewLogs(ctx, clnt, store, lgr, loc, cfg.options("Logs")))
	if err != nil {
		return
	}

	model = NewModel(ctx, lgr, screens...)
	return
}

// Location is where timestamps are shown, local time when no timezone is set.
func (cfg *Config) Location() (loc *time.Location, err error) {

	if cfg.Api == nil || cfg.Api.Timezone == "" {
		return time.Local, nil
	}

	loc, err = time.LoadLocation(cfg.Api.Timezone)
	if err != nil {
		err = errors.Wrapf(err, "failed to load timezone %s", cfg.Api.Timezone)
	}
	return
}

// unexported

func (cfg *Config) options(title string) page.Options {
	return page.Options{
		PageSize: cfg.PageSize,
		Layouts:  cfg.Layouts[title],
	}
}

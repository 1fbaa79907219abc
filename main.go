package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/coastprep/pkg/catalog"
	"github.com/spencer-p/coastprep/pkg/handlers"
	"github.com/spencer-p/coastprep/pkg/metrics"
	"github.com/spencer-p/coastprep/pkg/sites"
)

type Config struct {
	Port       string `default:"8080"`
	Prefix     string `default:"/"`
	SitesFile  string `default:"sites.yaml" split_words:"true"`
	CatalogURL string `split_words:"true"`
}

func main() {
	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	cfg, err := sites.Load(env.SitesFile)
	if err != nil {
		log.Fatalf("Failed to load sites from %s: %v", env.SitesFile, err)
	}
	log.Printf("Loaded %d sites from %s", len(cfg.Sites), env.SitesFile)

	r := mux.NewRouter().StrictSlash(true)
	r.Handle("/metrics", promhttp.Handler())

	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, env.Prefix, &handlers.Deps{
		Sites:   cfg,
		Catalog: &catalog.Client{URL: env.CatalogURL},
	})

	srv := &http.Server{
		Handler:      metrics.LatencyHandler(r),
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("Listening and serving on %s%s", srv.Addr, env.Prefix)
	log.Fatal(srv.ListenAndServe())
}

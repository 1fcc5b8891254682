package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	kml "github.com/tingold/orb-kml"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	file := flag.String("file", "", "KML or KMZ file to serve (overrides config)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			logger.Error("load config", "error", err)
			os.Exit(1)
		}
	}
	if *file != "" {
		cfg.File = *file
	}
	if err := kml.CheckFileName(cfg.File); err != nil {
		logger.Error("check input", "error", err)
		os.Exit(1)
	}

	doc, err := kml.ReadFile(cfg.File, &kml.Options{
		MaxKMLSize: int64(cfg.MaxKMLMB) << 20,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("decode", "file", cfg.File, "error", err)
		os.Exit(1)
	}
	logger.Info("decoded map", "name", doc.Name, "placemarks", len(doc.Placemarks))

	// Encode every format up front; the document never changes.
	var fgb, kmlOut, kmzOut bytes.Buffer
	opts := kml.DefaultWriteOptions()
	opts.IncludeIndex = cfg.IncludeIndex
	if err := kml.WriteFlatGeobuf(&fgb, doc, opts); err != nil {
		logger.Error("write flatgeobuf", "error", err)
		os.Exit(1)
	}
	if err := kml.WriteKML(&kmlOut, doc); err != nil {
		logger.Error("write kml", "error", err)
		os.Exit(1)
	}
	if err := kml.WriteKMZ(&kmzOut, doc); err != nil {
		logger.Error("write kmz", "error", err)
		os.Exit(1)
	}
	geoJSON, err := json.Marshal(doc.ToFeatureCollection())
	if err != nil {
		logger.Error("write geojson", "error", err)
		os.Exit(1)
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		logger.Error("write json", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Get("/data.fgb", serveBytes("application/octet-stream", fgb.Bytes()))
	r.Get("/data.geojson", serveBytes("application/geo+json", geoJSON))
	r.Get("/data.kml", serveBytes("application/vnd.google-earth.kml+xml", kmlOut.Bytes()))
	r.Get("/data.kmz", serveBytes("application/vnd.google-earth.kmz", kmzOut.Bytes()))
	r.Get("/data.json", serveBytes("application/json", docJSON))
	r.Handle("/*", http.FileServer(http.Dir(cfg.ClientDir)))

	logger.Info("server starting", "listen", cfg.Listen, "client_dir", cfg.ClientDir)
	if err := http.ListenAndServe(cfg.Listen, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func serveBytes(contentType string, data []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Write(data)
	}
}

package main

import (
	"github.com/tsawler/infobox/builder"
	"github.com/tsawler/infobox/export"
	"github.com/tsawler/infobox/format"
	"github.com/tsawler/infobox/internal/config"
)

// newSink returns the file sink, teed with the object store when one is
// configured.
func newSink(cfg *config.Config) (builder.Sink, error) {
	f, err := format.Parse(cfg.Export.Format)
	if err != nil {
		return nil, err
	}

	files, err := export.NewFileSink(cfg.Export.Dir,
		export.WithFormat(f),
		export.WithPretty(cfg.Export.Pretty))
	if err != nil {
		return nil, err
	}
	if !cfg.ObjectStore.Enabled() {
		return files, nil
	}

	objects, err := export.NewObjectSink(export.ObjectConfig{
		Endpoint:  cfg.ObjectStore.Endpoint,
		Region:    cfg.ObjectStore.Region,
		AccessKey: cfg.ObjectStore.AccessKey,
		SecretKey: cfg.ObjectStore.SecretKey,
		Bucket:    cfg.ObjectStore.Bucket,
		UseSSL:    cfg.ObjectStore.UseSSL,
		Prefix:    cfg.ObjectStore.Prefix,
		Format:    f,
		Pretty:    cfg.Export.Pretty,
	})
	if err != nil {
		return nil, err
	}
	return export.Tee(files, objects), nil
}

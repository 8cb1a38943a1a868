// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dashboard

import (
	"html/template"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<img src="stream?format={{.Format}}" width="{{.Width}}" height="{{.Height}}" alt="temperature chart">
<p>Last {{.History}} samples.</p>
</body>
</html>
`))

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

func (d *Dashboard) chartChangedLocked() {
	for f := range d.snapshot {
		delete(d.snapshot, f)
	}
	for c := range d.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
}

func (d *Dashboard) terminateClientsLocked() {
	for c := range d.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
}

// grabSnapshot returns the encoded chart, shared with other readers.
func (d *Dashboard) grabSnapshot(format ImageFormat) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.snapshot[format]; ok {
		return b, nil
	}
	b, err := encode(d.chart, format)
	if err != nil {
		return nil, err
	}
	d.snapshot[format] = b
	return b, nil
}

func (d *Dashboard) formatFromRequest(w http.ResponseWriter, r *http.Request) (ImageFormat, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return 0, false
	}
	if value := r.URL.Query().Get("format"); value != "" {
		f, err := ParseFormat(value)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return 0, false
		}
		return f, true
	}
	return d.opts.Format, true
}

func (d *Dashboard) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title   string
		Format  string
		Width   int
		Height  int
		History int
	}{d.opts.Title, d.opts.Format.param(), d.opts.Width, d.opts.Height, d.opts.History}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.WithError(err).Warn("dashboard: rendering index failed")
	}
}

func (d *Dashboard) serveChart(w http.ResponseWriter, r *http.Request) {
	format, ok := d.formatFromRequest(w, r)
	if !ok {
		return
	}
	b, err := d.grabSnapshot(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.mimeType())
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(b); err != nil {
		log.WithError(err).Debug("dashboard: writing chart failed")
	}
}

// serveStream sends the chart and a new copy after every Publish until the
// client goes away or Halt is called.
func (d *Dashboard) serveStream(w http.ResponseWriter, r *http.Request) {
	format, ok := d.formatFromRequest(w, r)
	if !ok {
		return
	}
	fw := newFrameWriter(w, format)
	w.Header().Set("Content-Type", fw.contentType())

	c := &client{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}
	d.mu.Lock()
	d.clients[c] = struct{}{}
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		delete(d.clients, c)
		d.mu.Unlock()
	}()

	for {
		payload, err := d.grabSnapshot(format)
		if err == nil {
			err = fw.writeFrame(payload)
		}
		if err != nil {
			// There's no way to deliver an error within an image stream.
			log.WithError(err).Debug("dashboard: stream ended")
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}

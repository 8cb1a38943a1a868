// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/GermanBionicSystems/bme280stream/sink"
)

type fakeHistory []sink.Sample

func (h fakeHistory) Latest(n int) ([]sink.Sample, error) {
	if n > len(h) {
		n = len(h)
	}
	return h[:n], nil
}

type failingHistory struct{}

func (failingHistory) Latest(int) ([]sink.Sample, error) {
	return nil, errors.New("no such table: temperature_log")
}

func smallOpts() *Options {
	o := DefaultOpts
	o.Width = 160
	o.Height = 100
	o.History = 3
	return &o
}

func TestNewHistory(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h := fakeHistory{
		{Time: t0.Add(3 * time.Second), Celsius: 23},
		{Time: t0.Add(2 * time.Second), Celsius: 22},
		{Time: t0.Add(time.Second), Celsius: 21},
		{Time: t0, Celsius: 20},
	}
	d, err := New(h, smallOpts())
	if err != nil {
		t.Fatal(err)
	}
	got := d.Samples()
	expected := []float64{21, 22, 23}
	if len(got) != len(expected) {
		t.Fatalf("%v", got)
	}
	for i := range expected {
		if got[i].Celsius != expected[i] {
			t.Errorf("sample %d = %f, expected %f", i, got[i].Celsius, expected[i])
		}
	}
}

func TestNewFailure(t *testing.T) {
	if _, err := New(failingHistory{}, nil); err == nil {
		t.Error("expected history error")
	}
	if _, err := New(nil, &Options{}); err == nil {
		t.Error("expected size error")
	}
}

func TestPublishWindow(t *testing.T) {
	d, err := New(nil, smallOpts())
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []float64{1, 2, 3, 4, 5} {
		if err := d.Publish(c); err != nil {
			t.Fatal(err)
		}
	}
	got := d.Samples()
	if len(got) != 3 || got[0].Celsius != 3 || got[2].Celsius != 5 {
		t.Errorf("unexpected window %v", got)
	}
}

func TestBounds(t *testing.T) {
	data := []struct {
		in     []float64
		lo, hi float64
	}{
		{[]float64{25.08}, 25, 26},
		{[]float64{20, 20}, 20, 21},
		{[]float64{-3.5, 21.2}, -4, 22},
	}
	for i, line := range data {
		var s []sink.Sample
		for _, c := range line.in {
			s = append(s, sink.Sample{Celsius: c})
		}
		lo, hi := bounds(s)
		if lo != line.lo || hi != line.hi {
			t.Errorf("#%d: bounds(%v) = %f, %f; expected %f, %f", i, line.in, lo, hi, line.lo, line.hi)
		}
	}
}

func TestChart(t *testing.T) {
	for _, tc := range []struct {
		target        string
		wantMediaType string
		decode        func(io.Reader) (image.Image, error)
	}{
		{"/chart.png", "image/png", png.Decode},
		{"/chart.png?format=jpeg", "image/jpeg", jpeg.Decode},
	} {
		t.Run(tc.target, func(t *testing.T) {
			d, err := New(nil, smallOpts())
			if err != nil {
				t.Fatal(err)
			}
			if err := d.Publish(25.08); err != nil {
				t.Fatal(err)
			}
			rec := httptest.NewRecorder()
			d.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("status %d", rec.Code)
			}
			if got := rec.Header().Get("Content-Type"); got != tc.wantMediaType {
				t.Errorf("Content-Type %q, want %q", got, tc.wantMediaType)
			}
			img, err := tc.decode(rec.Body)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := img.Bounds().Size(), (image.Point{160, 100}); got != want {
				t.Errorf("Got image size %v, want %v", got, want)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	d, err := New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `src="stream?format=png"`) || !strings.Contains(body, "Last 100 samples") {
		t.Errorf("unexpected page:\n%s", body)
	}
}

func TestRequestStatus(t *testing.T) {
	d, err := New(nil, smallOpts())
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		method     string
		target     string
		wantStatus int
	}{
		{http.MethodGet, "/chart.png?format=", http.StatusOK},
		{http.MethodGet, "/chart.png?format=bmp", http.StatusBadRequest},
		{http.MethodGet, "/stream?format=bmp", http.StatusBadRequest},
		{http.MethodPost, "/chart.png", http.StatusMethodNotAllowed},
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
		{http.MethodGet, "/missing", http.StatusNotFound},
	} {
		t.Run(fmt.Sprint(tc), func(t *testing.T) {
			rec := httptest.NewRecorder()
			d.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
			if rec.Code != tc.wantStatus {
				t.Errorf("%s %s returned %d, want %d", tc.method, tc.target, rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestStream(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)

	d, err := New(nil, smallOpts())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(d)
	t.Cleanup(srv.Close)
	t.Cleanup(srv.CloseClientConnections)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/stream", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		t.Fatal(err)
	}
	if mediaType != "multipart/x-mixed-replace" || len(params["boundary"]) < 50 {
		t.Fatalf("unexpected Content-Type %q", resp.Header.Get("Content-Type"))
	}
	mr := multipart.NewReader(resp.Body, params["boundary"])

	const frames = 3
	for i := 0; i < frames; i++ {
		part, err := mr.NextPart()
		if err != nil {
			t.Fatalf("NextPart() failed: %v", err)
		}
		checkPart(t, part)
		if i == frames-1 {
			if err := d.Halt(); err != nil {
				t.Fatal(err)
			}
		} else if err := d.Publish(float64(20 + i)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := mr.NextPart(); !(errors.Is(err, io.EOF) || strings.HasSuffix(err.Error(), " EOF")) {
		t.Errorf("Reading beyond last part didn't fail with EOF: %v", err)
	}
}

func checkPart(t *testing.T, part *multipart.Part) {
	t.Helper()
	if got := part.Header.Get("Content-Type"); got != "image/png" {
		t.Errorf("part Content-Type %q", got)
	}
	n, err := strconv.Atoi(part.Header.Get("Content-Length"))
	if err != nil {
		t.Errorf("Parsing Content-Length header failed: %v", err)
	}
	content, err := io.ReadAll(part)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(content) != n {
		t.Errorf("Read %d bytes, Content-Length header is %d", len(content), n)
	}
	if _, err := png.Decode(bytes.NewReader(content)); err != nil {
		t.Errorf("Decoding image failed: %v", err)
	}
}

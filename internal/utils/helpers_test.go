package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", wantLimit: 5},
		{name: "explicit", limit: "20", offset: "40", wantLimit: 20, wantOffset: 40},
		{name: "limit too large", limit: "51", wantErr: true},
		{name: "zero limit", limit: "0", wantErr: true},
		{name: "negative offset", offset: "-1", wantErr: true},
		{name: "not a number", limit: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := ParseLimitOffset(tt.limit, tt.offset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (limit != tt.wantLimit || offset != tt.wantOffset) {
				t.Fatalf("got %d/%d, want %d/%d", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestSplitQueryValues(t *testing.T) {
	got := SplitQueryValues([]string{"COUNTER_OFFER, ARC_APPROVAL", "", "ARC_APPROVAL"})
	want := []string{"COUNTER_OFFER", "ARC_APPROVAL", "ARC_APPROVAL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if SplitQueryValues(nil) != nil {
		t.Fatal("expected nil for no values")
	}
}

func TestSendErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	SendErrorResponse(rec, http.StatusConflict, "rfq has expired")

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["reason"] != "rfq has expired" {
		t.Fatalf("body = %v", body)
	}
}

type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header { return w.header }
func (w *brokenWriter) WriteHeader(int)     {}
func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestSendErrorResponseLogsWriteFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	SendErrorResponse(&brokenWriter{header: http.Header{}}, http.StatusBadRequest, "bad input")

	if !strings.Contains(buf.String(), "connection reset") {
		t.Fatalf("log output = %q, want write error", buf.String())
	}
}

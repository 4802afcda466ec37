package calc

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inkcalc/internal/canvas"
)

func TestCalculatePostsImageAndVars(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, Path, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"data":[{"expr":"x","result":"5","assign":true},{"expr":"2+2","result":4,"assign":false}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	out, err := c.Calculate(context.Background(), image.NewRGBA(image.Rect(0, 0, 8, 4)), map[string]string{"y": "2"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got.Image, "data:image/png;base64,"))
	assert.Equal(t, map[string]string{"y": "2"}, got.Vars)
	img, err := canvas.DecodeDataURL(got.Image)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	s, ok := out.(Success)
	require.True(t, ok, "expected Success, got %T", out)
	assert.Equal(t, []Entry{{Expr: "x", Result: "5", Assign: true}, {Expr: "2+2", Result: "4"}}, s.Entries)
	assert.Equal(t, map[string]string{"x": "5"}, s.Assignments())
}

func TestCalculateSendsEmptyVarsObject(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL).Calculate(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1)), nil)
	require.NoError(t, err)
	assert.Equal(t, Empty{}, out)
	assert.JSONEq(t, `{}`, string(raw["dict_of_vars"]))
}

func TestCalculateTransportFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Calculate(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1)), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Contains(t, err.Error(), "status 500")

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	_, err = NewClient(closed.URL).Calculate(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1)), nil)
	assert.True(t, errors.Is(err, ErrTransport))

	_, err = NewClient("").Calculate(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1)), nil)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestCalculateGarbageBodyIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()
	_, err := NewClient(srv.URL).Calculate(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1)), nil)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestDecodeVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Outcome
	}{
		{"failure", `{"success":false,"message":"bad image"}`, Failure{Message: "bad image"}},
		{"failure without message", `{"success":false}`, Failure{Message: "request failed"}},
		{"status error", `{"status":"error","message":"nope","data":[]}`, Failure{Message: "nope"}},
		{"status success", `{"message":"Image processed","status":"success","data":[{"expr":"y","result":"3","assign":true}]}`,
			Success{Entries: []Entry{{Expr: "y", Result: "3", Assign: true}}}},
		{"empty", `{"success":true,"data":[]}`, Empty{}},
		{"missing data", `{"success":true}`, Empty{}},
		{"numeric result", `{"success":true,"data":[{"expr":"1+1","result":2.5}]}`, Success{Entries: []Entry{{Expr: "1+1", Result: "2.5"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := Decode([]byte(`{"success":true,"data":[{"expr":{"a":1}}]}`))
	assert.Error(t, err)
}

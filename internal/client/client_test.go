package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/program-catalog/internal/models"
)

func TestUnwrapsEnvelope(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var patch map[string]any
		_ = json.NewDecoder(r.Body).Decode(&patch)
		raw, _ := json.Marshal(patch)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"p1","title":"Law","videoUrl":"https://youtu.be/x"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/").WithToken("tok")
	p, err := c.UpdateProgram(context.Background(), "p1", models.ProgramPatch{VideoURL: models.Ptr("https://youtu.be/x")})
	require.NoError(t, err)
	assert.Equal(t, "Law", p.Title)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.JSONEq(t, `{"videoUrl":"https://youtu.be/x"}`, gotBody)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":"email already registered","code":"conflict"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Register(context.Background(), models.Registration{})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsConflict())
	assert.Equal(t, "email already registered", apiErr.Error())
}

func TestTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListPrograms(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)

	srv.Close()
	err = New(srv.URL).Logout(context.Background())
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestDeleteEscapesID(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"success":true,"message":"program deleted"}`))
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteProgram(context.Background(), "a/b"))
	assert.Equal(t, "/programs/a%2Fb", path)
}

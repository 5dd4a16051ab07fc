package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscreen/internal/config"
)

func TestNew_MockWithoutRedis(t *testing.T) {
	cfg := config.Default()
	cfg.AI.Provider = config.ProviderMock
	cfg.AI.Models = config.DefaultModels(config.ProviderMock)

	logger, hook := test.NewNullLogger()
	a, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Redis)
	assert.Equal(t, "mock", a.Backend.Name())

	var warned bool
	for _, e := range hook.AllEntries() {
		if strings.Contains(e.Message, "mock backend") {
			warned = true
		}
	}
	assert.True(t, warned)

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/screening/gad7",
		strings.NewReader(`{"answers":[1,1,1,1,1,1,1]}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"score":7,"severity":"mild"}`, rec.Body.String())
}

func TestNew_UnreachableRedis(t *testing.T) {
	cfg := config.Default()
	cfg.AI.Provider = config.ProviderMock
	cfg.RedisURI = "redis://127.0.0.1:1"

	logger, _ := test.NewNullLogger()
	_, err := New(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "pinging redis")
}

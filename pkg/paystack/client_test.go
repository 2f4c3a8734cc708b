package paystack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(logger.Options{ServiceName: "paystack-test"})
}

func TestNewReferenceShape(t *testing.T) {
	c := NewWithEndpoint("http://localhost", "sk_test", "HANNIESFOOD", testLogger(t))

	ref := c.NewReference()
	matched, err := regexp.MatchString(`^HANNIESFOOD_\d+_[a-z0-9]{7}$`, ref)
	require.NoError(t, err)
	require.True(t, matched, "unexpected reference %q", ref)

	require.NotEqual(t, ref, c.NewReference())
}

func TestVerifyTransactionSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/HANNIESFOOD_1_abcdefg", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"reference":"HANNIESFOOD_1_abcdefg","status":"success","amount":250000,"currency":"NGN"}}`))
	}))
	defer srv.Close()

	c := NewWithEndpoint(srv.URL, "sk_test", "HANNIESFOOD", testLogger(t))

	tx, err := c.VerifyTransaction(context.Background(), "HANNIESFOOD_1_abcdefg")
	require.NoError(t, err)
	require.True(t, tx.Succeeded())
	require.Equal(t, int64(250000), tx.Amount)
	require.Equal(t, "NGN", tx.Currency)
}

func TestVerifyTransactionUnknownReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewWithEndpoint(srv.URL, "sk_test", "HANNIESFOOD", testLogger(t))

	_, err := c.VerifyTransaction(context.Background(), "HANNIESFOOD_missing")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestVerifyTransactionRejectedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer srv.Close()

	c := NewWithEndpoint(srv.URL, "sk_test", "HANNIESFOOD", testLogger(t))

	_, err := c.VerifyTransaction(context.Background(), "HANNIESFOOD_1_abcdefg")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}

func TestVerifyTransactionEmptyReference(t *testing.T) {
	c := NewWithEndpoint("http://localhost", "sk_test", "HANNIESFOOD", testLogger(t))

	_, err := c.VerifyTransaction(context.Background(), "   ")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"listing-reservations-server/utils"
)

// buildAuthTestApp creates a minimal iris app with the reservation read routes
// behind the JWT verifier, as main wires them.
func buildAuthTestApp(t *testing.T) *iris.Application {
	t.Helper()
	setupTestDB(t)
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	renters := app.Party("/api/renters", accessTokenVerifierMiddleware)
	{
		renters.Get("/{id}/reservations", utils.RenterIDMiddleware, GetRenterReservations)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

// signTestToken returns a signed JWT for the given renter id
func signTestToken(t *testing.T, renterID string) string {
	t.Helper()
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, err := signer.Sign(utils.AccessToken{ID: renterID, Role: "renter"})
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return string(token)
}

func TestRenterReservationsAuth(t *testing.T) {
	app := buildAuthTestApp(t)

	// No token -> rejected by the verifier
	req := httptest.NewRequest(http.MethodGet, "/api/renters/"+testRenterID+"/reservations", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Token for another renter -> 403
	req2 := httptest.NewRequest(http.MethodGet, "/api/renters/"+testRenterID+"/reservations", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(t, "f3b4c0de-1111-4222-8333-444455556666"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for mismatched renter, got %d", resp2.Code)
	}

	// Matching renter -> 200 (empty list OK)
	req3 := httptest.NewRequest(http.MethodGet, "/api/renters/"+testRenterID+"/reservations", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(t, testRenterID))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for matching renter, got %d", resp3.Code)
	}
}

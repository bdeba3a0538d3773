package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func guardRouter(guard gin.HandlerFunc, path string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET(path, guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoggedInGuard(t *testing.T) {
	service := newTestService(t, 0)
	r := guardRouter(service.LoggedIn(), "/protected")

	if w := doRequest(r, "/protected", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}
	if w := doRequest(r, "/protected", "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}

	token, err := service.Issue(IndividualClaims{ID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if w := doRequest(r, "/protected", token); w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", w.Code)
	}
	// Raw token and Bearer-prefixed token are both accepted.
	if w := doRequest(r, "/protected", "Bearer "+token); w.Code != http.StatusOK {
		t.Fatalf("bearer token: expected 200, got %d", w.Code)
	}
}

func TestCompanyAccountGuard(t *testing.T) {
	service := newTestService(t, 0)
	r := guardRouter(service.CompanyAccount(), "/company-only")

	companyToken, _ := service.Issue(CompanyClaims{Handle: "acme"})
	individualToken, _ := service.Issue(IndividualClaims{ID: 1, Username: "alice"})

	if w := doRequest(r, "/company-only", companyToken); w.Code != http.StatusOK {
		t.Fatalf("company token: expected 200, got %d", w.Code)
	}
	if w := doRequest(r, "/company-only", individualToken); w.Code != http.StatusForbidden {
		t.Fatalf("individual token: expected 403, got %d", w.Code)
	}
	if w := doRequest(r, "/company-only", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}
}

func TestIndividualAccountGuard(t *testing.T) {
	service := newTestService(t, 0)
	r := guardRouter(service.IndividualAccount(), "/individual-only")

	companyToken, _ := service.Issue(CompanyClaims{Handle: "acme"})
	individualToken, _ := service.Issue(IndividualClaims{ID: 1, Username: "alice"})

	if w := doRequest(r, "/individual-only", individualToken); w.Code != http.StatusOK {
		t.Fatalf("individual token: expected 200, got %d", w.Code)
	}
	if w := doRequest(r, "/individual-only", companyToken); w.Code != http.StatusForbidden {
		t.Fatalf("company token: expected 403, got %d", w.Code)
	}
}

func TestCorrectUserGuard(t *testing.T) {
	service := newTestService(t, 0)
	r := guardRouter(service.CorrectUser("username"), "/users/:username")

	aliceToken, _ := service.Issue(IndividualClaims{ID: 1, Username: "alice"})
	companyToken, _ := service.Issue(CompanyClaims{Handle: "acme"})

	if w := doRequest(r, "/users/alice", aliceToken); w.Code != http.StatusOK {
		t.Fatalf("own profile: expected 200, got %d", w.Code)
	}
	if w := doRequest(r, "/users/bob", aliceToken); w.Code != http.StatusForbidden {
		t.Fatalf("other profile: expected 403, got %d", w.Code)
	}
	if w := doRequest(r, "/users/alice", companyToken); w.Code != http.StatusForbidden {
		t.Fatalf("company token: expected 403, got %d", w.Code)
	}
	if w := doRequest(r, "/users/alice", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}
}

func TestCorrectCompanyGuard(t *testing.T) {
	service := newTestService(t, 0)
	r := guardRouter(service.CorrectCompany("handle"), "/companies/:handle")

	acmeToken, _ := service.Issue(CompanyClaims{Handle: "acme"})
	aliceToken, _ := service.Issue(IndividualClaims{ID: 1, Username: "alice"})

	if w := doRequest(r, "/companies/acme", acmeToken); w.Code != http.StatusOK {
		t.Fatalf("own company: expected 200, got %d", w.Code)
	}
	if w := doRequest(r, "/companies/globex", acmeToken); w.Code != http.StatusForbidden {
		t.Fatalf("other company: expected 403, got %d", w.Code)
	}
	if w := doRequest(r, "/companies/acme", aliceToken); w.Code != http.StatusForbidden {
		t.Fatalf("individual token: expected 403, got %d", w.Code)
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"jobbotron/internal/auth"
	"jobbotron/internal/services"
	"jobbotron/internal/store/memory"
)

func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: []byte("test-secret")})
	if err != nil {
		t.Fatalf("build token service: %v", err)
	}
	s := memory.NewStore()
	return NewRouter(
		tokens,
		NewAuthHandler(services.NewAuthService(s, tokens)),
		NewCompanyHandler(services.NewCompanyService(s)),
		NewUserHandler(services.NewUserService(s)),
		NewJobHandler(services.NewJobService(s)),
	)
}

func do(t *testing.T, r *gin.Engine, method, target, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func registerCompany(t *testing.T, r *gin.Engine, handle string) string {
	t.Helper()
	w, _ := do(t, r, http.MethodPost, "/companies", "", map[string]any{
		"handle":   handle,
		"name":     "Test Co",
		"password": "pw",
		"email":    "jobs@" + handle + ".com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register company %s: %d %s", handle, w.Code, w.Body.String())
	}
	w, body := do(t, r, http.MethodPost, "/company-auth", "", map[string]any{
		"handle":   handle,
		"password": "pw",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("company auth: %d %s", w.Code, w.Body.String())
	}
	return body["token"].(string)
}

func registerUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w, _ := do(t, r, http.MethodPost, "/users", "", map[string]any{
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"email":      username + "@example.com",
		"password":   "pw",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register user %s: %d %s", username, w.Code, w.Body.String())
	}
	w, body := do(t, r, http.MethodPost, "/user-auth", "", map[string]any{
		"username": username,
		"password": "pw",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("user auth: %d %s", w.Code, w.Body.String())
	}
	return body["token"].(string)
}

func TestCompanyRegistrationAndConflict(t *testing.T) {
	r := newTestAPI(t)

	payload := map[string]any{
		"handle":   "acme",
		"name":     "Acme",
		"password": "pw",
		"email":    "a@a.com",
	}
	w, body := do(t, r, http.MethodPost, "/companies", "", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	if body["handle"] != "acme" {
		t.Fatalf("unexpected handle %v", body["handle"])
	}
	if _, leaked := body["password"]; leaked {
		t.Fatal("response contains a password field")
	}

	w, body = do(t, r, http.MethodPost, "/companies", "", payload)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate create: %d %s", w.Code, w.Body.String())
	}
	envelope := body["error"].(map[string]any)
	if envelope["title"] != "Conflict" {
		t.Fatalf("unexpected error title %v", envelope["title"])
	}
	if envelope["status"] != float64(409) {
		t.Fatalf("unexpected error status %v", envelope["status"])
	}
}

func TestCompanyCreateMissingFieldsIs400(t *testing.T) {
	r := newTestAPI(t)
	w, body := do(t, r, http.MethodPost, "/companies", "", map[string]any{"handle": "acme"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", w.Code, w.Body.String())
	}
	envelope := body["error"].(map[string]any)
	if envelope["title"] != "Bad Request" {
		t.Fatalf("unexpected error title %v", envelope["title"])
	}
}

func TestUserAuthRoundTrip(t *testing.T) {
	r := newTestAPI(t)
	token := registerUser(t, r, "alice")

	// The token decodes to the registered identity.
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: []byte("test-secret")})
	if err != nil {
		t.Fatalf("build token service: %v", err)
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	individual, ok := claims.(auth.IndividualClaims)
	if !ok {
		t.Fatalf("expected individual claims, got %T", claims)
	}
	if individual.Username != "alice" {
		t.Fatalf("unexpected username %q", individual.Username)
	}
}

func TestAuthRejectsBadCredentials(t *testing.T) {
	r := newTestAPI(t)
	registerUser(t, r, "alice")

	w, _ := do(t, r, http.MethodPost, "/user-auth", "", map[string]any{"username": "alice", "password": "wrong"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad password: expected 400, got %d", w.Code)
	}
	w, _ = do(t, r, http.MethodPost, "/user-auth", "", map[string]any{"username": "ghost", "password": "pw"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown username: expected 400, got %d", w.Code)
	}
	w, _ = do(t, r, http.MethodPost, "/company-auth", "", map[string]any{"handle": "ghost", "password": "pw"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown handle: expected 400, got %d", w.Code)
	}
}

func TestListCompaniesRequiresLogin(t *testing.T) {
	r := newTestAPI(t)
	w, body := do(t, r, http.MethodGet, "/companies", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	envelope := body["error"].(map[string]any)
	if envelope["title"] != "Unauthorized" {
		t.Fatalf("unexpected error title %v", envelope["title"])
	}
}

func TestJobAndApplicationFlow(t *testing.T) {
	r := newTestAPI(t)
	acmeToken := registerCompany(t, r, "acme")
	bobToken := registerUser(t, r, "bob")

	// The job's owner comes from the token, not the body.
	w, job := do(t, r, http.MethodPost, "/jobs", acmeToken, map[string]any{
		"title":  "eng",
		"salary": 100,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create job: %d %s", w.Code, w.Body.String())
	}
	if job["company"] != "acme" {
		t.Fatalf("job company %v, want acme", job["company"])
	}
	jobID := int(job["id"].(float64))

	// Individuals cannot post jobs.
	w, _ = do(t, r, http.MethodPost, "/jobs", bobToken, map[string]any{"title": "x", "salary": 1})
	if w.Code != http.StatusForbidden {
		t.Fatalf("individual posting job: expected 403, got %d", w.Code)
	}

	// Bob applies.
	w, body := do(t, r, http.MethodPost, "/jobs/"+itoa(jobID)+"/applications", bobToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("apply: %d %s", w.Code, w.Body.String())
	}
	if body["message"] != "Application received for job #"+itoa(jobID) {
		t.Fatalf("unexpected message %v", body["message"])
	}

	// Companies cannot apply.
	w, _ = do(t, r, http.MethodPost, "/jobs/"+itoa(jobID)+"/applications", acmeToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("company applying: expected 403, got %d", w.Code)
	}

	// The owning company sees bob's application.
	req := httptest.NewRequest(http.MethodGet, "/jobs/"+itoa(jobID)+"/applications", nil)
	req.Header.Set("Authorization", acmeToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list applications: %d %s", rec.Code, rec.Body.String())
	}
	var applications []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &applications); err != nil {
		t.Fatalf("decode applications %q: %v", rec.Body.String(), err)
	}
	if len(applications) != 1 {
		t.Fatalf("expected 1 application, got %d", len(applications))
	}
	if int(applications[0]["job_id"].(float64)) != jobID {
		t.Fatalf("unexpected job_id %v", applications[0]["job_id"])
	}
	if applications[0]["user_id"].(float64) == 0 {
		t.Fatal("missing user_id")
	}
}

func TestIndividualWithoutApplicationsGetsMessage(t *testing.T) {
	r := newTestAPI(t)
	acmeToken := registerCompany(t, r, "acme")
	bobToken := registerUser(t, r, "bob")

	w, job := do(t, r, http.MethodPost, "/jobs", acmeToken, map[string]any{"title": "eng", "salary": 100})
	if w.Code != http.StatusOK {
		t.Fatalf("create job: %d", w.Code)
	}
	jobID := int(job["id"].(float64))

	w, body := do(t, r, http.MethodGet, "/jobs/"+itoa(jobID)+"/applications", bobToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list applications: %d %s", w.Code, w.Body.String())
	}
	if body["message"] != "User has no applications for this job." {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestJobPatchDeniedForWrongCompany(t *testing.T) {
	r := newTestAPI(t)
	acmeToken := registerCompany(t, r, "acme")
	globexToken := registerCompany(t, r, "globex")

	w, job := do(t, r, http.MethodPost, "/jobs", acmeToken, map[string]any{"title": "eng", "salary": 100})
	if w.Code != http.StatusOK {
		t.Fatalf("create job: %d", w.Code)
	}
	jobID := int(job["id"].(float64))

	w, _ = do(t, r, http.MethodPatch, "/jobs/"+itoa(jobID), globexToken, map[string]any{"title": "stolen"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("wrong company patch: expected 403, got %d", w.Code)
	}

	w, patched := do(t, r, http.MethodPatch, "/jobs/"+itoa(jobID), acmeToken, map[string]any{"title": "senior eng"})
	if w.Code != http.StatusOK {
		t.Fatalf("owner patch: %d %s", w.Code, w.Body.String())
	}
	if patched["title"] != "senior eng" {
		t.Fatalf("title not updated: %v", patched["title"])
	}
	if patched["salary"] != float64(100) {
		t.Fatalf("salary changed on partial patch: %v", patched["salary"])
	}
}

func TestMissingJobIs404(t *testing.T) {
	r := newTestAPI(t)
	token := registerCompany(t, r, "acme")

	w, body := do(t, r, http.MethodGet, "/jobs/999", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	envelope := body["error"].(map[string]any)
	if envelope["title"] != "Not Found" {
		t.Fatalf("unexpected error title %v", envelope["title"])
	}
}

func TestCompanyDeleteRequiresCorrectCompany(t *testing.T) {
	r := newTestAPI(t)
	acmeToken := registerCompany(t, r, "acme")
	globexToken := registerCompany(t, r, "globex")

	w, _ := do(t, r, http.MethodDelete, "/companies/acme", globexToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("wrong company delete: expected 403, got %d", w.Code)
	}

	w, body := do(t, r, http.MethodDelete, "/companies/acme", acmeToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("own delete: %d %s", w.Code, w.Body.String())
	}
	if body["message"] != "Company deleted" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func TestJobCreateAcceptsZeroSalary(t *testing.T) {
	r := newTestAPI(t)
	acmeToken := registerCompany(t, r, "acme")

	w, job := do(t, r, http.MethodPost, "/jobs", acmeToken, map[string]any{
		"title":  "unpaid intern",
		"salary": 0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("zero salary rejected: %d %s", w.Code, w.Body.String())
	}
	if job["salary"] != float64(0) {
		t.Fatalf("salary not stored: %v", job["salary"])
	}

	w, _ = do(t, r, http.MethodPost, "/jobs", acmeToken, map[string]any{"title": "no salary"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing salary accepted: %d", w.Code)
	}
}

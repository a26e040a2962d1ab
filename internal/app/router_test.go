package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tutor_backend/internal/config"
	"tutor_backend/internal/model"
	"tutor_backend/internal/util"
	"tutor_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "api_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedCatalog(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	a := &App{Config: cfg, DB: db}
	repos := a.initRepositories(db)
	services, err := a.initServices(repos, cfg, db, nil)
	if err != nil {
		t.Fatalf("init services: %v", err)
	}
	controllers := a.initControllers(services, db)

	router := gin.New()
	a.registerRoutes(router, controllers, cfg)

	return &testAPI{router: router, db: db, cfg: cfg}
}

func (api *testAPI) parentToken(t *testing.T, email string) (*model.User, string) {
	t.Helper()
	parent := &model.User{
		Email:    email,
		Password: "x",
		Role:     model.Parent,
		IsActive: true,
	}
	if err := api.db.Create(parent).Error; err != nil {
		t.Fatalf("create parent: %v", err)
	}
	token, err := util.GenerateJWT(parent, 0, api.cfg.JWT.Secret, api.cfg.JWT.ExpireTime)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return parent, token
}

func (api *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp.Data
}

func TestChildrenRoutes_RequireToken(t *testing.T) {
	api := newTestAPI(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/children"},
		{http.MethodPost, "/api/children"},
		{http.MethodDelete, "/api/children/1"},
		{http.MethodPost, "/api/start-session"},
		{http.MethodGet, "/api/progress/1"},
	} {
		w := api.do(t, route.method, route.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status %d, want 401", route.method, route.path, w.Code)
		}
	}
}

func TestCreateChildAndStudentLogin(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.parentToken(t, "parent@example.com")

	w := api.do(t, http.MethodPost, "/api/children", token, gin.H{"name": "Alex", "level": "P4"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create child: status %d body %s", w.Code, w.Body.String())
	}
	child := decodeData(t, w)
	joinCode, _ := child["join_code"].(string)
	if len(joinCode) != 6 {
		t.Fatalf("join_code = %q, want 6 chars", joinCode)
	}

	w = api.do(t, http.MethodPost, "/api/student-login", "", gin.H{"join_code": joinCode})
	if w.Code != http.StatusOK {
		t.Fatalf("student login: status %d body %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	if data["token"] == "" {
		t.Error("student login returned no token")
	}
	student, _ := data["student"].(map[string]interface{})
	if student["name"] != "Alex" {
		t.Errorf("student login resolved %v, want Alex", student["name"])
	}

	w = api.do(t, http.MethodPost, "/api/student-login", "", gin.H{"join_code": "NOPE99"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad join code: status %d, want 400", w.Code)
	}
}

func TestDeleteChild_ForeignParentGets404(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.parentToken(t, "alice@example.com")
	_, bobToken := api.parentToken(t, "bob@example.com")

	w := api.do(t, http.MethodPost, "/api/children", aliceToken, gin.H{"name": "Alex", "level": "P4"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create child: status %d", w.Code)
	}
	id := decodeData(t, w)["id"].(float64)

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/children/%d", int(id)), bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign delete: status %d, want 404", w.Code)
	}

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/children/%d", int(id)), aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("owner delete: status %d, want 200", w.Code)
	}
}

func TestQuizFlowOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.parentToken(t, "parent@example.com")

	w := api.do(t, http.MethodPost, "/api/children", token, gin.H{"name": "Alex", "level": "P3"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create child: status %d", w.Code)
	}
	studentID := uint(decodeData(t, w)["id"].(float64))

	w = api.do(t, http.MethodPost, "/api/start-session", token, gin.H{
		"student_id": studentID,
		"subject":    "Math",
		"topic":      "Subtraction",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("start session: status %d body %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	sessionID := uint(data["session_id"].(float64))
	if data["question_text"] == "" {
		t.Error("no question text returned")
	}

	// The seeded P3 Subtraction question has answer 27.
	w = api.do(t, http.MethodPost, "/api/submit-answer", token, gin.H{
		"session_id":  sessionID,
		"user_answer": "27",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit: status %d body %s", w.Code, w.Body.String())
	}
	result := decodeData(t, w)
	if result["is_correct"] != true {
		t.Errorf("is_correct = %v, want true", result["is_correct"])
	}
	if result["xp_gained"].(float64) != 10 {
		t.Errorf("xp_gained = %v, want 10", result["xp_gained"])
	}

	// Repeat grading is refused.
	w = api.do(t, http.MethodPost, "/api/submit-answer", token, gin.H{
		"session_id":  sessionID,
		"user_answer": "27",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("repeat submit: status %d, want 409", w.Code)
	}

	w = api.do(t, http.MethodGet, fmt.Sprintf("/api/progress/%d", studentID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("progress: status %d body %s", w.Code, w.Body.String())
	}
	progress := decodeData(t, w)
	rows, _ := progress["progress"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("progress rows = %v, want one topic", rows)
	}
	row := rows[0].(map[string]interface{})
	if row["topic"] != "Subtraction" || row["accuracy"].(float64) != 100 {
		t.Errorf("progress row = %v", row)
	}
}

func TestSubmitAnswer_ForeignParentGets403(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.parentToken(t, "alice@example.com")
	_, bobToken := api.parentToken(t, "bob@example.com")

	w := api.do(t, http.MethodPost, "/api/children", aliceToken, gin.H{"name": "Alex", "level": "P3"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create child: status %d", w.Code)
	}
	studentID := uint(decodeData(t, w)["id"].(float64))

	w = api.do(t, http.MethodPost, "/api/start-session", aliceToken, gin.H{
		"student_id": studentID,
		"topic":      "Subtraction",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("start session: status %d body %s", w.Code, w.Body.String())
	}
	sessionID := uint(decodeData(t, w)["session_id"].(float64))

	// A non-owner must not grade the session or see the correction.
	w = api.do(t, http.MethodPost, "/api/submit-answer", bobToken, gin.H{
		"session_id":  sessionID,
		"user_answer": "99",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign submit: status %d body %s, want 403", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "correct_answer") {
		t.Error("correction leaked to non-owner")
	}

	// The denied attempt must not have consumed the session or touched
	// the student's counters.
	w = api.do(t, http.MethodPost, "/api/submit-answer", aliceToken, gin.H{
		"session_id":  sessionID,
		"user_answer": "27",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("owner submit after denied attempt: status %d body %s", w.Code, w.Body.String())
	}
	if result := decodeData(t, w); result["is_correct"] != true {
		t.Errorf("owner grading = %v, want correct", result)
	}

	var child model.StudentProfile
	if err := api.db.First(&child, studentID).Error; err != nil {
		t.Fatalf("reload child: %v", err)
	}
	if child.XP != 10 || child.Streak != 1 {
		t.Errorf("after owner grading: xp=%d streak=%d, want 10/1", child.XP, child.Streak)
	}
}

func TestSubmitAnswer_StudentSessionGradesOwnSession(t *testing.T) {
	api := newTestAPI(t)
	_, parentToken := api.parentToken(t, "parent@example.com")

	w := api.do(t, http.MethodPost, "/api/children", parentToken, gin.H{"name": "Alex", "level": "P3"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create child: status %d", w.Code)
	}
	joinCode := decodeData(t, w)["join_code"].(string)

	w = api.do(t, http.MethodPost, "/api/student-login", "", gin.H{"join_code": joinCode})
	if w.Code != http.StatusOK {
		t.Fatalf("student login: status %d", w.Code)
	}
	studentToken := decodeData(t, w)["token"].(string)

	w = api.do(t, http.MethodPost, "/api/start-session", studentToken, gin.H{"topic": "Subtraction"})
	if w.Code != http.StatusOK {
		t.Fatalf("start session as student: status %d body %s", w.Code, w.Body.String())
	}
	sessionID := uint(decodeData(t, w)["session_id"].(float64))

	w = api.do(t, http.MethodPost, "/api/submit-answer", studentToken, gin.H{
		"session_id":  sessionID,
		"user_answer": "27",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit as student: status %d body %s", w.Code, w.Body.String())
	}
	if result := decodeData(t, w); result["is_correct"] != true {
		t.Errorf("student grading own session = %v, want correct", result)
	}
}

func TestProgress_ForeignParentGets403(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.parentToken(t, "alice@example.com")
	_, bobToken := api.parentToken(t, "bob@example.com")

	w := api.do(t, http.MethodPost, "/api/children", aliceToken, gin.H{"name": "Alex", "level": "P4"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create child: status %d", w.Code)
	}
	id := decodeData(t, w)["id"].(float64)

	w = api.do(t, http.MethodGet, fmt.Sprintf("/api/progress/%d", int(id)), bobToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign progress read: status %d, want 403", w.Code)
	}
}

func TestTopicsRoute(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/topics?level=P3", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("topics: status %d", w.Code)
	}
	data := decodeData(t, w)
	topics, _ := data["topics"].([]interface{})
	if len(topics) == 0 {
		t.Fatal("no topics for Math/P3")
	}

	w = api.do(t, http.MethodGet, "/api/topics", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing level: status %d, want 400", w.Code)
	}
}

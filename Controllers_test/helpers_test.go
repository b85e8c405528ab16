package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/router"
	"github.com/yeremiapane/restaurant-floorplan/storage"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupDeps -> dependency graph di atas MemoryKV dengan jam tetap
func setupDeps(now string) (*router.Dependencies, *storage.MemoryKV) {
	clock, err := time.ParseInLocation("2006-01-02T15:04", now, time.UTC)
	if err != nil {
		panic(err)
	}
	kv := storage.NewMemoryKV()
	deps := router.NewDependencies(kv, storage.NewKeys(""), func() time.Time { return clock }, time.UTC, time.Hour)
	return deps, kv
}

func doJSON(t *testing.T, r http.Handler, method, url string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Manager-ID", "manager-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return w, response
}

func tableStatuses(data interface{}) map[string]string {
	out := map[string]string{}
	for _, raw := range data.([]interface{}) {
		table := raw.(map[string]interface{})
		out[table["id"].(string)] = table["status"].(string)
	}
	return out
}

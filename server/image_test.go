package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/protocol"
)

func multipartImageBody(t *testing.T, fileName string, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.Copy(part, strings.NewReader(content)); err != nil {
		t.Fatal(err)
	}
	writer.Close()
	return &body, writer.FormDataContentType()
}

func TestCreateImageRequiresAuthentication(t *testing.T) {
	s := newTestServer(&dao.FakeDAO{})
	body, contentType := multipartImageBody(t, "pothole.jpg", "jpegbytes")
	r, _ := http.NewRequest("POST", basePath+"/images", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for anonymous upload, got %d", w.Code)
	}
}

func TestCreateImageGrantsOwnership(t *testing.T) {
	fake := &dao.FakeDAO{
		Image: models.Image{ID: testImageID, OwnedBy: "alice", FileName: "pothole.jpg", StorageKey: testImageID},
	}
	s := newTestServer(fake)

	body, contentType := multipartImageBody(t, "pothole.jpg", "jpegbytes")
	r, _ := http.NewRequest("POST", basePath+"/images", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("USER_ID", "alice")
	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp protocol.Image
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not parse response: %v", err)
	}
	if resp.ID != testImageID {
		t.Errorf("expected image id in response, got %s", resp.ID)
	}

	id := auth.GrantID(auth.ObjectTypeImage, testImageID, auth.GranteeTypeUser, "alice", auth.PermissionDelete)
	found := false
	for _, g := range fake.Grants {
		if g.ID == id {
			found = true
		}
	}
	if !found {
		t.Error("expected delete grant for uploader")
	}
}

func TestGetImageStreamGuard(t *testing.T) {
	fake := &dao.FakeDAO{
		Image: models.Image{ID: testImageID, OwnedBy: "alice", StorageKey: testImageID, ContentType: "image/jpeg"},
		Facts: auth.ObservationFacts{},
	}
	s := newTestServer(fake)

	// load content and an uploader read grant
	if err := s.Store.Upload(strings.NewReader("jpegbytes"), testImageID, "image/jpeg"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Perms.GrantOwnership(auth.ObjectTypeImage, testImageID, "alice"); err != nil {
		t.Fatal(err)
	}

	// a stranger has no grant and no draft path to the image
	r, _ := http.NewRequest("GET", basePath+"/images/"+testImageID+"/stream", nil)
	r.Header.Set("USER_ID", "bob")
	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for stranger stream, got %d", w.Code)
	}

	// the uploader reads through their grant
	r, _ = http.NewRequest("GET", basePath+"/images/"+testImageID+"/stream", nil)
	r.Header.Set("USER_ID", "alice")
	w = httptest.NewRecorder()
	s.App.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for uploader stream, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "jpegbytes" {
		t.Errorf("expected image content, got %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", ct)
	}

	// after a public read grant, anonymous callers can stream it
	if _, err := s.Perms.GrantPublicRead(auth.ObjectTypeImage, testImageID); err != nil {
		t.Fatal(err)
	}
	r, _ = http.NewRequest("GET", basePath+"/images/"+testImageID+"/stream", nil)
	w = httptest.NewRecorder()
	s.App.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for public stream, got %d", w.Code)
	}
}

func TestDeleteImageGuard(t *testing.T) {
	fake := &dao.FakeDAO{
		Image: models.Image{ID: testImageID, OwnedBy: "alice", StorageKey: testImageID},
	}
	s := newTestServer(fake)

	if _, err := s.Perms.GrantOwnership(auth.ObjectTypeImage, testImageID, "alice"); err != nil {
		t.Fatal(err)
	}

	// a stranger cannot delete
	r, _ := http.NewRequest("DELETE", basePath+"/images/"+testImageID, nil)
	r.Header.Set("USER_ID", "bob")
	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for stranger delete, got %d", w.Code)
	}

	// a moderator deletes through the default table
	r, _ = http.NewRequest("DELETE", basePath+"/images/"+testImageID, nil)
	r.Header.Set("USER_ID", "mod")
	r.Header.Set("USER_SCOPES", "ROLE_MODERATOR")
	w = httptest.NewRecorder()
	s.App.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if len(fake.Grants) != 0 {
		t.Errorf("expected image grants revoked, %d remain", len(fake.Grants))
	}
}

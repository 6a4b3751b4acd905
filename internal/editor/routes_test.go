package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lpforge/lpforge/internal/assets"
	"github.com/lpforge/lpforge/internal/document"
	"github.com/lpforge/lpforge/internal/render"
	"github.com/lpforge/lpforge/internal/session"
)

func newTestAPI(t *testing.T) (http.Handler, *session.Manager) {
	t.Helper()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	mgr := session.NewManager("")
	r := chi.NewRouter()
	RegisterRoutes(r, mgr, renderer, NewHub(renderer))
	return r, mgr
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		r = bytes.NewReader(data)
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/api/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: status %d: %s", w.Code, w.Body.String())
	}
	var resp sessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding session response: %v", err)
	}
	return resp.ID
}

func sessionDoc(t *testing.T, mgr *session.Manager, id string) *document.Document {
	t.Helper()
	s, err := mgr.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var doc *document.Document
	s.View(func(d *document.Document, _ int) { doc = d })
	return doc
}

func TestCreateAndDeleteSession(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)
	if mgr.Len() != 1 {
		t.Errorf("expected 1 session, got %d", mgr.Len())
	}

	w := doJSON(t, h, http.MethodDelete, "/api/sessions/"+id, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete: status %d", w.Code)
	}
	if mgr.Len() != 0 {
		t.Errorf("expected 0 sessions after delete, got %d", mgr.Len())
	}
}

func TestCreateSessionFromDocument(t *testing.T) {
	h, mgr := newTestAPI(t)
	doc := document.Default()
	doc.Site.Title = "Imported"
	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp sessionResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if got := sessionDoc(t, mgr, resp.ID).Site.Title; got != "Imported" {
		t.Errorf("expected imported document, got title %q", got)
	}
}

func TestCreateSessionBadPayload(t *testing.T) {
	h, _ := newTestAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{"site": {}}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for incomplete document, got %d", w.Code)
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	h, _ := newTestAPI(t)
	w := doJSON(t, h, http.MethodGet, "/api/sessions/nope/document", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGetAndReplaceDocument(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)

	w := doJSON(t, h, http.MethodGet, "/api/sessions/"+id+"/document", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get document: status %d", w.Code)
	}
	var got document.Document
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("document response is not JSON: %v", err)
	}

	// A broken replacement leaves the session untouched.
	req := httptest.NewRequest(http.MethodPut, "/api/sessions/"+id+"/document", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for broken document, got %d", rec.Code)
	}
	if sessionDoc(t, mgr, id).Site.Title != got.Site.Title {
		t.Error("failed replace changed the document")
	}

	doc := document.Default()
	doc.Site.Title = "Replaced"
	var buf bytes.Buffer
	doc.Save(&buf)
	req = httptest.NewRequest(http.MethodPut, "/api/sessions/"+id+"/document", &buf)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("replace: status %d: %s", rec.Code, rec.Body.String())
	}
	if sessionDoc(t, mgr, id).Site.Title != "Replaced" {
		t.Error("replace did not install the new document")
	}
}

func TestDownloadDocument(t *testing.T) {
	h, _ := newTestAPI(t)
	id := createSession(t, h)

	w := doJSON(t, h, http.MethodGet, "/api/sessions/"+id+"/document/download", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download: status %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "lp_config.json") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if _, err := document.Load(w.Body); err != nil {
		t.Errorf("downloaded document does not load back: %v", err)
	}
}

func TestSetField(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)

	w := doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/fields",
		map[string]string{"path": "site.title", "value": "New title"})
	if w.Code != http.StatusOK {
		t.Fatalf("set field: status %d: %s", w.Code, w.Body.String())
	}
	var resp sessionResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Revision != 1 {
		t.Errorf("expected revision 1, got %d", resp.Revision)
	}
	if sessionDoc(t, mgr, id).Site.Title != "New title" {
		t.Error("field not applied")
	}

	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/fields",
		map[string]string{"path": "site.bogus", "value": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown path, got %d", w.Code)
	}
}

func TestSectionOps(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)
	before := sessionDoc(t, mgr, id).SectionOrder[0]

	w := doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/section-order",
		map[string]any{"index": 1, "direction": "up"})
	if w.Code != http.StatusOK {
		t.Fatalf("section order: status %d: %s", w.Code, w.Body.String())
	}
	if sessionDoc(t, mgr, id).SectionOrder[1] != before {
		t.Error("swap not applied")
	}

	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/section-visibility",
		map[string]any{"section": "flow", "visible": false})
	if w.Code != http.StatusOK {
		t.Fatalf("section visibility: status %d: %s", w.Code, w.Body.String())
	}
	if sessionDoc(t, mgr, id).Visibility["flow"] {
		t.Error("section visibility not applied")
	}

	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/section-visibility",
		map[string]any{"section": "bogus", "visible": false})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown section, got %d", w.Code)
	}
}

func TestShopsOps(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)
	n := len(sessionDoc(t, mgr, id).Shops)

	w := doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/shops",
		map[string]any{"action": "add"})
	if w.Code != http.StatusOK {
		t.Fatalf("add shop: status %d: %s", w.Code, w.Body.String())
	}
	if got := len(sessionDoc(t, mgr, id).Shops); got != n+1 {
		t.Errorf("expected %d shops, got %d", n+1, got)
	}

	first := sessionDoc(t, mgr, id).Shops[0].ID
	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/shops",
		map[string]any{"action": "move", "from": 0, "to": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("move shop: status %d: %s", w.Code, w.Body.String())
	}
	if sessionDoc(t, mgr, id).Shops[1].ID != first {
		t.Error("move not applied")
	}

	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/shops",
		map[string]any{"action": "remove"})
	if w.Code != http.StatusOK {
		t.Fatalf("remove shop: status %d: %s", w.Code, w.Body.String())
	}
	if got := len(sessionDoc(t, mgr, id).Shops); got != n {
		t.Errorf("expected %d shops, got %d", n, got)
	}
}

func TestShopVisibility(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)

	w := doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/shops/0/visibility",
		map[string]any{"block": "cta", "visible": false})
	if w.Code != http.StatusOK {
		t.Fatalf("shop visibility: status %d: %s", w.Code, w.Body.String())
	}
	doc := sessionDoc(t, mgr, id)
	if doc.Shops[0].Visibility.CTA {
		t.Error("cta visibility not applied")
	}
	if len(doc.Shops) > 1 && !doc.Shops[1].Visibility.CTA {
		t.Error("sibling shop visibility must be untouched")
	}

	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/shops/99/visibility",
		map[string]any{"block": "cta", "visible": false})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad index, got %d", w.Code)
	}
}

func TestTableOps(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)
	doc := sessionDoc(t, mgr, id)
	cols, rows := len(doc.DetailTable.Columns), len(doc.DetailTable.Rows)

	w := doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/detail-table/columns",
		map[string]any{"action": "add", "name": "Extra"})
	if w.Code != http.StatusOK {
		t.Fatalf("add column: status %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/detail-table/rows",
		map[string]any{"action": "add", "name": "Extra row"})
	if w.Code != http.StatusOK {
		t.Fatalf("add row: status %d: %s", w.Code, w.Body.String())
	}

	doc = sessionDoc(t, mgr, id)
	if len(doc.DetailTable.Columns) != cols+1 || len(doc.DetailTable.Rows) != rows+1 {
		t.Error("table ops not applied")
	}
	for i, row := range doc.DetailTable.Rows {
		if len(row.Cells) != len(doc.DetailTable.Columns) {
			t.Errorf("row %d: %d cells for %d columns", i, len(row.Cells), len(doc.DetailTable.Columns))
		}
	}
}

func TestListOps(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)
	n := len(sessionDoc(t, mgr, id).Flow.Steps)

	w := doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/list",
		map[string]any{"target": "steps", "action": "add"})
	if w.Code != http.StatusOK {
		t.Fatalf("add step: status %d: %s", w.Code, w.Body.String())
	}
	if got := len(sessionDoc(t, mgr, id).Flow.Steps); got != n+1 {
		t.Errorf("expected %d steps, got %d", n+1, got)
	}

	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/list",
		map[string]any{"target": "features", "shop": 0, "action": "add"})
	if w.Code != http.StatusOK {
		t.Fatalf("add feature: status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/list",
		map[string]any{"target": "bogus", "action": "add"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown target, got %d", w.Code)
	}
}

func uploadImage(t *testing.T, h http.Handler, id, slot string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "upload.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/images/%s", id, slot), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestUploadAndClearImage(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}

	w := uploadImage(t, h, id, "site.logo_url", png)
	if w.Code != http.StatusOK {
		t.Fatalf("upload: status %d: %s", w.Code, w.Body.String())
	}
	doc := sessionDoc(t, mgr, id)
	if !assets.IsDataURI(doc.Site.LogoURL) {
		t.Errorf("expected embedded logo, got %q", doc.Site.LogoURL)
	}

	// Clearing an embedded value empties the field.
	wc := doJSON(t, h, http.MethodDelete, "/api/sessions/"+id+"/images/site.logo_url", nil)
	if wc.Code != http.StatusOK {
		t.Fatalf("clear: status %d: %s", wc.Code, wc.Body.String())
	}
	if got := sessionDoc(t, mgr, id).Site.LogoURL; got != "" {
		t.Errorf("expected cleared logo, got %q", got)
	}

	// Clearing a plain URL preserves it.
	doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/fields",
		map[string]string{"path": "site.logo_url", "value": "https://example.com/logo.png"})
	wc = doJSON(t, h, http.MethodDelete, "/api/sessions/"+id+"/images/site.logo_url", nil)
	if wc.Code != http.StatusOK {
		t.Fatalf("clear: status %d", wc.Code)
	}
	if got := sessionDoc(t, mgr, id).Site.LogoURL; got != "https://example.com/logo.png" {
		t.Errorf("plain URL must survive a clear, got %q", got)
	}
}

func TestRejectedImageOpsLeaveStoreAlone(t *testing.T) {
	h, mgr := newTestAPI(t)
	id := createSession(t, h)
	s, err := mgr.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}

	// An image-shaped path with an out-of-range index is rejected and
	// must not leave an orphan upload in the store.
	w := uploadImage(t, h, id, "shops.9.logo_url", png)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range slot, got %d", w.Code)
	}
	if s.Assets.Len() != 0 {
		t.Errorf("rejected upload left %d entries in the store", s.Assets.Len())
	}

	// Same for clear: upload to the second shop, remove it, then try to
	// clear the now-dangling slot. The cached upload survives the 400.
	w = uploadImage(t, h, id, "shops.1.logo_url", png)
	if w.Code != http.StatusOK {
		t.Fatalf("upload: status %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, h, http.MethodPost, "/api/sessions/"+id+"/ops/shops",
		map[string]any{"action": "remove"})
	if w.Code != http.StatusOK {
		t.Fatalf("remove shop: status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, http.MethodDelete, "/api/sessions/"+id+"/images/shops.1.logo_url", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for dangling slot, got %d", w.Code)
	}
	if s.Assets.Get("shops.1.logo_url") == nil {
		t.Error("rejected clear dropped the cached upload")
	}
}

func TestUploadRejectsNonImageField(t *testing.T) {
	h, _ := newTestAPI(t)
	id := createSession(t, h)
	w := uploadImage(t, h, id, "site.title", []byte{1, 2, 3})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-image field, got %d", w.Code)
	}
}

func TestPreviewEndpoint(t *testing.T) {
	h, _ := newTestAPI(t)
	id := createSession(t, h)

	w := doJSON(t, h, http.MethodGet, "/api/sessions/"+id+"/preview?mode=sp", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("preview: status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
	if w.Header().Get("X-Preview-Mode") != "sp" {
		t.Error("preview mode not echoed")
	}
	if !strings.Contains(w.Body.String(), "<!DOCTYPE html>") {
		t.Error("preview is not a full page")
	}
}

func TestExportEndpoint(t *testing.T) {
	h, _ := newTestAPI(t)
	id := createSession(t, h)

	w := doJSON(t, h, http.MethodGet, "/api/sessions/"+id+"/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("export body is not a zip archive")
	}
}

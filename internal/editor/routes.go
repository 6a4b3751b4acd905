// Package editor exposes the HTTP editing API: document CRUD, mutation
// operations, image uploads, live preview and export download.
package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lpforge/lpforge/internal/assets"
	"github.com/lpforge/lpforge/internal/document"
	"github.com/lpforge/lpforge/internal/export"
	"github.com/lpforge/lpforge/internal/render"
	"github.com/lpforge/lpforge/internal/session"
)

// maxUploadBytes caps a single image upload (form overhead included).
const maxUploadBytes = 20 << 20

// RegisterRoutes mounts the editor API and the preview websocket.
func RegisterRoutes(r chi.Router, mgr *session.Manager, renderer *render.Renderer, hub *Hub) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handleCreateSession(mgr))
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", handleDeleteSession(mgr))
			r.Get("/document", handleGetDocument(mgr))
			r.Put("/document", handleReplaceDocument(mgr, hub))
			r.Get("/document/download", handleDownloadDocument(mgr))
			r.Post("/reset", handleReset(mgr, hub))
			r.Post("/duplicate", handleDuplicate(mgr, hub))
			r.Post("/fields", handleSetField(mgr, hub))
			r.Post("/ops/section-order", handleSectionOrder(mgr, hub))
			r.Post("/ops/section-visibility", handleSectionVisibility(mgr, hub))
			r.Post("/ops/shops", handleShopsOp(mgr, hub))
			r.Post("/ops/shops/{index}/visibility", handleShopVisibility(mgr, hub))
			r.Post("/ops/detail-table/columns", handleColumnsOp(mgr, hub))
			r.Post("/ops/detail-table/rows", handleRowsOp(mgr, hub))
			r.Post("/ops/list", handleListOp(mgr, hub))
			r.Post("/images/*", handleUploadImage(mgr, hub))
			r.Delete("/images/*", handleClearImage(mgr, hub))
			r.Get("/preview", handlePreview(mgr, renderer))
			r.Get("/export", handleExport(mgr, renderer))
		})
	})

	r.Get("/ws/sessions/{id}/preview", handlePreviewWS(mgr, hub))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// getSession resolves the {id} route param. A nil return means the 404
// has already been written.
func getSession(w http.ResponseWriter, r *http.Request, mgr *session.Manager) *session.Session {
	s, err := mgr.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil
	}
	return s
}

// mutate applies fn to the session's document, answers the new revision
// and pushes a preview frame. Operation errors become 400s and leave
// the document untouched; every op in the document package validates
// before mutating.
func mutate(w http.ResponseWriter, s *session.Session, hub *Hub, fn func(doc *document.Document) error) {
	rev, err := s.Mutate(fn)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	hub.Broadcast(s)
	writeJSON(w, http.StatusOK, sessionResponse{ID: s.ID, Revision: rev})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return false
	}
	return true
}

func handleCreateSession(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body io.Reader
		if r.ContentLength > 0 {
			body = r.Body
		}
		s, err := mgr.Create(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusCreated, sessionResponse{ID: s.ID, Revision: s.Revision})
	}
}

func handleDeleteSession(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mgr.Delete(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetDocument(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		s.View(func(doc *document.Document, _ int) {
			writeJSON(w, http.StatusOK, doc)
		})
	}
}

func handleReplaceDocument(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		s, err := mgr.Replace(s.ID, r.Body)
		if err != nil {
			// Load is all-or-nothing: the session keeps its document.
			writeError(w, http.StatusBadRequest, err)
			return
		}
		hub.Broadcast(s)
		writeJSON(w, http.StatusOK, sessionResponse{ID: s.ID, Revision: s.Revision})
	}
}

func handleDownloadDocument(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var buf bytes.Buffer
		var saveErr error
		s.View(func(doc *document.Document, _ int) {
			saveErr = doc.Save(&buf)
		})
		if saveErr != nil {
			writeError(w, http.StatusInternalServerError, saveErr)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="lp_config.json"`)
		w.Write(buf.Bytes())
	}
}

func handleReset(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		s, err := mgr.Reset(s.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		hub.Broadcast(s)
		writeJSON(w, http.StatusOK, sessionResponse{ID: s.ID, Revision: s.Revision})
	}
}

func handleDuplicate(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		s, err := mgr.Duplicate(s.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		hub.Broadcast(s)
		writeJSON(w, http.StatusOK, sessionResponse{ID: s.ID, Revision: s.Revision})
	}
}

func handleSetField(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var req fieldRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Path == "" {
			writeError(w, http.StatusBadRequest, fmt.Errorf("path is required"))
			return
		}
		mutate(w, s, hub, func(doc *document.Document) error {
			return doc.SetString(req.Path, req.Value)
		})
	}
}

func handleSectionOrder(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var req sectionOrderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		mutate(w, s, hub, func(doc *document.Document) error {
			switch req.Direction {
			case "up":
				document.SwapUp(doc.SectionOrder, req.Index)
			case "down":
				document.SwapDown(doc.SectionOrder, req.Index)
			default:
				return fmt.Errorf("direction must be up or down")
			}
			return nil
		})
	}
}

func handleSectionVisibility(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var req sectionVisibilityRequest
		if !decodeBody(w, r, &req) {
			return
		}
		mutate(w, s, hub, func(doc *document.Document) error {
			if !document.KnownSection(req.Section) {
				return fmt.Errorf("unknown section %q", req.Section)
			}
			doc.Visibility[req.Section] = req.Visible
			return nil
		})
	}
}

func handleShopsOp(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var req shopsOpRequest
		if !decodeBody(w, r, &req) {
			return
		}
		mutate(w, s, hub, func(doc *document.Document) error {
			switch req.Action {
			case "add":
				doc.AddShop()
				return nil
			case "remove":
				return doc.RemoveShop()
			case "move":
				return doc.MoveShop(req.From, req.To)
			default:
				return fmt.Errorf("unknown shops action %q", req.Action)
			}
		})
	}
}

func handleShopVisibility(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var req shopVisibilityRequest
		if !decodeBody(w, r, &req) {
			return
		}
		idx := chi.URLParam(r, "index")
		mutate(w, s, hub, func(doc *document.Document) error {
			i, err := strconv.Atoi(idx)
			if err != nil || i < 0 || i >= len(doc.Shops) {
				return fmt.Errorf("bad shop index %q", idx)
			}
			v := &doc.Shops[i].Visibility
			switch req.Block {
			case "info":
				v.Info = req.Visible
			case "features":
				v.Features = req.Visible
			case "reviews":
				v.Reviews = req.Visible
			case "campaign":
				v.Campaign = req.Visible
			case "cta":
				v.CTA = req.Visible
			default:
				return fmt.Errorf("unknown visibility block %q", req.Block)
			}
			return nil
		})
	}
}

func handleColumnsOp(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var req tableOpRequest
		if !decodeBody(w, r, &req) {
			return
		}
		mutate(w, s, hub, func(doc *document.Document) error {
			switch req.Action {
			case "add":
				doc.DetailTable.AddColumn(req.Name)
				return nil
			case "remove":
				return doc.DetailTable.RemoveColumn()
			default:
				return fmt.Errorf("unknown columns action %q", req.Action)
			}
		})
	}
}

func handleRowsOp(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var req tableOpRequest
		if !decodeBody(w, r, &req) {
			return
		}
		mutate(w, s, hub, func(doc *document.Document) error {
			switch req.Action {
			case "add":
				label := req.Name
				if label == "" {
					label = "New row"
				}
				doc.DetailTable.AddRow(label)
				return nil
			case "remove":
				return doc.DetailTable.RemoveRow()
			default:
				return fmt.Errorf("unknown rows action %q", req.Action)
			}
		})
	}
}

func handleListOp(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var req listOpRequest
		if !decodeBody(w, r, &req) {
			return
		}
		add := req.Action == "add"
		if !add && req.Action != "remove" {
			writeError(w, http.StatusBadRequest, fmt.Errorf("unknown list action %q", req.Action))
			return
		}
		mutate(w, s, hub, func(doc *document.Document) error {
			shop := func() (*document.ShopCard, error) {
				if req.Shop < 0 || req.Shop >= len(doc.Shops) {
					return nil, fmt.Errorf("shop index %d out of range", req.Shop)
				}
				return &doc.Shops[req.Shop], nil
			}
			switch req.Target {
			case "comp_shops":
				if add {
					doc.ComparisonTop.AddCompShop()
					return nil
				}
				return doc.ComparisonTop.RemoveCompShop()
			case "steps":
				if add {
					doc.Flow.AddStep()
					return nil
				}
				return doc.Flow.RemoveStep()
			case "features":
				card, err := shop()
				if err != nil {
					return err
				}
				if add {
					card.AddFeature()
					return nil
				}
				return card.RemoveFeature()
			case "reviews":
				card, err := shop()
				if err != nil {
					return err
				}
				if add {
					card.AddReview()
					return nil
				}
				return card.RemoveReview()
			case "extra_images":
				card, err := shop()
				if err != nil {
					return err
				}
				if add {
					card.AddExtraImage(req.Value)
					return nil
				}
				return card.RemoveExtraImage()
			default:
				return fmt.Errorf("unknown list target %q", req.Target)
			}
		})
	}
}

func handleUploadImage(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		slot := chi.URLParam(r, "*")
		if !document.IsImageField(slot) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%q is not an image field", slot))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", err))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("file field is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("reading upload: %w", err))
			return
		}
		mime := header.Header.Get("Content-Type")
		if mime == "" {
			mime = http.DetectContentType(data)
		}

		// Resolve the field before touching the store: a rejected slot
		// (say, an out-of-range shop index) must not leave an orphan
		// upload behind.
		mutate(w, s, hub, func(doc *document.Document) error {
			field, err := doc.StringField(slot)
			if err != nil {
				return err
			}
			*field = s.Assets.Put(slot, header.Filename, mime, data)
			return nil
		})
	}
}

func handleClearImage(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		slot := chi.URLParam(r, "*")
		mutate(w, s, hub, func(doc *document.Document) error {
			field, err := doc.StringField(slot)
			if err != nil {
				return err
			}
			s.Assets.Delete(slot)
			*field = assets.ClearEmbedded(*field)
			return nil
		})
	}
}

func handlePreview(mgr *session.Manager, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		mode := r.URL.Query().Get("mode")
		if mode == "" {
			mode = "pc"
		}

		var html string
		var renderErr error
		s.View(func(doc *document.Document, _ int) {
			html, renderErr = renderer.Render(doc, false)
		})
		if renderErr != nil {
			writeError(w, http.StatusInternalServerError, renderErr)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Preview-Mode", mode)
		w.Write([]byte(html))
	}
}

func handleExport(mgr *session.Manager, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		var data []byte
		var exportErr error
		s.View(func(doc *document.Document, _ int) {
			data, exportErr = export.Package(doc, renderer)
		})
		if exportErr != nil {
			writeError(w, http.StatusInternalServerError, exportErr)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="lp_export.zip"`)
		w.Write(data)
	}
}

func handlePreviewWS(mgr *session.Manager, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := getSession(w, r, mgr)
		if s == nil {
			return
		}
		hub.ServeWS(s, w, r)
	}
}
